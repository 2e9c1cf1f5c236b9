package posts

import (
	"strings"
	"time"
)

// Display formats for the human-readable creation stamps
const (
	DateLayout           = "January 2, 2006"
	SubmissionTimeLayout = "3:04 PM"
)

// Post represents a board game write-up submitted by a user.
// JSON field names match what the site's frontend already consumes.
type Post struct {
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	ID             string    `json:"_id"`
	UserID         string    `json:"userId,omitempty"`
	Author         string    `json:"author"`
	Title          string    `json:"title"`
	SubTitle       string    `json:"subTitle"`
	Paragraph      string    `json:"paragraph"`
	Img            string    `json:"img,omitempty"`
	PublicID       string    `json:"publicId,omitempty"`
	SubmissionTime string    `json:"submissionTime,omitempty"`
	Date           string    `json:"date,omitempty"`
}

// HasMedia reports whether the post's image lives on the media host
func (p *Post) HasMedia() bool {
	return p.PublicID != ""
}

// MissingFields returns the required fields that are empty, in form order
func (p *Post) MissingFields() []string {
	return missingRequired(p.Title, p.SubTitle, p.Author, p.Paragraph)
}

// PostInput is the client-supplied part of a post, used for both create
// and update. On update every mutable field is replaced, so omitted
// optional fields are cleared.
type PostInput struct {
	UserID    string `json:"userId,omitempty"`
	Author    string `json:"author"`
	Title     string `json:"title"`
	SubTitle  string `json:"subTitle"`
	Paragraph string `json:"paragraph"`
	Img       string `json:"img,omitempty"`
	PublicID  string `json:"publicId,omitempty"`
}

// MissingFields returns the required fields that are empty, in form order
func (in PostInput) MissingFields() []string {
	return missingRequired(in.Title, in.SubTitle, in.Author, in.Paragraph)
}

// ApplyTo overwrites the mutable fields of p with the input
func (in PostInput) ApplyTo(p *Post) {
	p.UserID = in.UserID
	p.Author = in.Author
	p.Title = in.Title
	p.SubTitle = in.SubTitle
	p.Paragraph = in.Paragraph
	p.Img = in.Img
	p.PublicID = in.PublicID
}

// NewPost builds an unsaved post stamped with the given submission time
func NewPost(in PostInput, submittedAt time.Time) *Post {
	p := &Post{
		SubmissionTime: submittedAt.Format(SubmissionTimeLayout),
		Date:           submittedAt.Format(DateLayout),
	}
	in.ApplyTo(p)
	return p
}

func missingRequired(title, subTitle, author, paragraph string) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", title},
		{"subTitle", subTitle},
		{"author", author},
		{"paragraph", paragraph},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
