package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

const INTERNALERRORJSON = "{\"detail\": \"Internal server error\"}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

func WriteResponseWithStatus(log *zap.SugaredLogger, w http.ResponseWriter, status int, body any) {
	jsonByte, err := json.Marshal(body)
	if err != nil {
		log.Errorf("failed to marshal response: %v", err)
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(jsonByte); err != nil {
		log.Errorf("failed to write response: %v", err)
	}
}

func WriteError(log *zap.SugaredLogger, w http.ResponseWriter, status int, detail string) {
	WriteResponseWithStatus(log, w, status, ErrorResponse{Detail: detail})
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// implementation similar to http.Error, only difference is the Content-type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
