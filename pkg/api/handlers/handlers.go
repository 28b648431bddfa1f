package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/worldcanvas/pkg/api/middleware"
	"github.com/cbodonnell/worldcanvas/pkg/history"
	"github.com/cbodonnell/worldcanvas/pkg/log"
	"github.com/cbodonnell/worldcanvas/pkg/placement"
)

// statusForError maps a command rejection to an HTTP status. Unexpected
// errors map to 500.
func statusForError(err error) int {
	switch placement.KindOf(err) {
	case placement.KindUnauthenticated:
		return http.StatusUnauthorized
	case placement.KindPermissionDenied:
		return http.StatusForbidden
	case placement.KindResourceExhausted:
		return http.StatusTooManyRequests
	case placement.KindInvalidArgument:
		return http.StatusBadRequest
	case placement.KindAlreadyExists:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeCommandError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Error("command failed: %v", err)
		http.Error(w, "internal error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

type PlaceRequest struct {
	Record string `json:"record"`
}

type PlaceResponse struct {
	Key string `json:"key"`
}

func HandlePlaceObject(pipeline *placement.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UIDFromContext(r.Context())

		req := &PlaceRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		key, err := pipeline.PlaceObject(r.Context(), uid, req.Record)
		if err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, &PlaceResponse{Key: key})
	}
}

type DeleteRequest struct {
	ChunkID string `json:"chunkId"`
	Key     string `json:"key"`
}

func HandleDeleteObject(pipeline *placement.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UIDFromContext(r.Context())

		req := &DeleteRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		if err := pipeline.DeleteObject(r.Context(), uid, req.ChunkID, req.Key); err != nil {
			writeCommandError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type InitIdentityRequest struct {
	Username string `json:"username"`
}

func HandleInitIdentity(pipeline *placement.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid := middleware.UIDFromContext(r.Context())

		req := &InitIdentityRequest{}
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, "malformed request body", http.StatusBadRequest)
			return
		}

		account, err := pipeline.InitIdentity(r.Context(), uid, req.Username)
		if err != nil {
			writeCommandError(w, err)
			return
		}

		writeJSON(w, account)
	}
}

func HandleGetEditorState(pipeline *placement.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, pipeline.State())
	}
}

type ToplistResponse struct {
	Users        []history.UserTotals `json:"users"`
	TotalPlaced  int                  `json:"totalPlaced"`
	TotalDeleted int                  `json:"totalDeleted"`
}

const toplistLimit = 50

func HandleGetToplist(historyLog *history.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := historyLog.ReadAll(r.Context())
		if err != nil {
			log.Error("failed to read history: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		placed, deleted := history.Totals(entries)
		writeJSON(w, &ToplistResponse{
			Users:        history.Toplist(entries, toplistLimit),
			TotalPlaced:  placed,
			TotalDeleted: deleted,
		})
	}
}
