package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/samqfs/samqfsui/internal/protocol"
	"github.com/samqfs/samqfsui/internal/server/httpx"
	"github.com/samqfs/samqfsui/internal/store"
	"github.com/samqfs/samqfsui/internal/tableview"
)

func (s *consoleServer) listOperationsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	ops, err := s.db.ListOperations(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, protocol.ListOperationsResponse{Operations: ops})
}

func (s *consoleServer) createOperationHandler(w http.ResponseWriter, r *http.Request) {
	var req protocol.CreateOperationRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hosts := append(append([]string{}, req.Hosts...), splitHostList(req.HostList)...)
	op, err := s.db.CreateOperation(r.Context(), req.Kind, hosts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.metrics.operations.Inc()
	slog.Info("operation created", "operation_id", op.ID, "kind", op.Kind, "hosts", len(hosts))
	httpx.WriteJSON(w, http.StatusCreated, protocol.CreateOperationResponse{Operation: op})
}

func splitHostList(packed string) []string {
	var out []string
	for _, rec := range tableview.SplitList(packed, tableview.DelimRecord) {
		out = append(out, tableview.SplitList(rec, tableview.DelimComma)...)
	}
	return out
}

func (s *consoleServer) recordHostResultHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req protocol.RecordHostResultRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	applied, err := s.db.RecordHostResult(r.Context(), id, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if applied {
		s.metrics.hostResults.WithLabelValues(protocol.NormalizeHostStatus(req.Status)).Inc()
	} else {
		slog.Debug("host result ignored; host already terminal", "operation_id", id, "host", req.Host, "status", req.Status)
	}

	sum, err := s.db.OperationSummary(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if sum.Done() {
		slog.Info("operation finished", "operation_id", id, "succeeded", sum.Succeeded, "failed", sum.Failed)
	}
	httpx.WriteJSON(w, http.StatusOK, sum)
}

// operationStatusHandler serves the summary polled by the status window.
// XML is the default; JSON is returned when the client asks for it.
func (s *consoleServer) operationStatusHandler(w http.ResponseWriter, r *http.Request) {
	sum, err := s.db.OperationSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.WriteJSON(w, http.StatusOK, sum)
		return
	}
	httpx.WriteXML(w, http.StatusOK, sum)
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrUnknownHost), errors.Is(err, store.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
