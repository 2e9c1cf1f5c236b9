package post

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"Boardgames/internal/core/posts"
)

// maxPostBodyBytes caps create and update bodies
const maxPostBodyBytes = 1 << 20

// postRequest accepts both a bare post and the {"reqBody": {...}} envelope
// older site builds send
type postRequest struct {
	ReqBody *posts.PostInput `json:"reqBody"`
	posts.PostInput
}

func (req postRequest) input() posts.PostInput {
	if req.ReqBody != nil {
		return *req.ReqBody
	}
	return req.PostInput
}

// decodePostInput reads a post from the request body, writing the error
// response itself when the body is unusable
func decodePostInput(w http.ResponseWriter, r *http.Request) (posts.PostInput, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPostBodyBytes)

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body too large (max %dMB)", maxPostBodyBytes>>20))
			return posts.PostInput{}, false
		}
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return posts.PostInput{}, false
	}
	return req.input(), true
}
