package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/samqfs/samqfsui/internal/server/grpcapi"
)

// consoleGRPCServer answers gRPC calls by replaying them against the HTTP
// router, so both transports share one implementation.
type consoleGRPCServer struct {
	grpcapi.UnimplementedConsoleServer
	router http.Handler
}

func newConsoleGRPCServer(router http.Handler) *consoleGRPCServer {
	return &consoleGRPCServer{router: router}
}

func (g *consoleGRPCServer) GetServerInfo(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return g.invokeStruct(ctx, http.MethodGet, "/api/v1/server-info", nil)
}

func (g *consoleGRPCServer) ListPresets(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return g.invokeStruct(ctx, http.MethodGet, "/api/v1/popup/presets", nil)
}

func (g *consoleGRPCServer) PlanPopup(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return g.invokeStruct(ctx, http.MethodPost, "/api/v1/popup/plan", req.AsMap())
}

func (g *consoleGRPCServer) ValidateRange(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return g.invokeStruct(ctx, http.MethodPost, "/api/v1/validate/range", req.AsMap())
}

func (g *consoleGRPCServer) ValidateField(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return g.invokeStruct(ctx, http.MethodPost, "/api/v1/validate/field", req.AsMap())
}

func (g *consoleGRPCServer) CreateOperation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return g.invokeStruct(ctx, http.MethodPost, "/api/v1/operations", req.AsMap())
}

func (g *consoleGRPCServer) RecordHostResult(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	body := req.AsMap()
	id, err := operationIDFrom(body)
	if err != nil {
		return nil, err
	}
	delete(body, "operation_id")
	return g.invokeStruct(ctx, http.MethodPost, "/api/v1/operations/"+url.PathEscape(id)+"/hosts", body)
}

func (g *consoleGRPCServer) GetOperationStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := operationIDFrom(req.AsMap())
	if err != nil {
		return nil, err
	}
	return g.invokeStruct(ctx, http.MethodGet, "/api/v1/operations/"+url.PathEscape(id)+"/status", nil)
}

func operationIDFrom(body map[string]any) (string, error) {
	id, _ := body["operation_id"].(string)
	id = strings.TrimSpace(id)
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "operation_id is required")
	}
	return id, nil
}

func (g *consoleGRPCServer) invokeStruct(ctx context.Context, method, targetPath string, body map[string]any) (*structpb.Struct, error) {
	raw, err := g.invokeJSON(ctx, method, targetPath, body)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "decode JSON response: %v", err)
	}
	return out, nil
}

func (g *consoleGRPCServer) invokeJSON(ctx context.Context, method, targetPath string, body map[string]any) ([]byte, error) {
	if g == nil || g.router == nil {
		return nil, status.Error(codes.Internal, "gRPC bridge is not initialized")
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "marshal request body: %v", err)
		}
		payload = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, targetPath, payload).WithContext(ctx)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	g.router.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	rawBody, _ := io.ReadAll(resp.Body)
	trimmed := strings.TrimSpace(string(rawBody))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if trimmed == "" {
			trimmed = http.StatusText(resp.StatusCode)
		}
		return nil, status.Errorf(httpStatusToGRPCCode(resp.StatusCode), "http %d: %s", resp.StatusCode, trimmed)
	}
	return rawBody, nil
}

func httpStatusToGRPCCode(statusCode int) codes.Code {
	switch statusCode {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.FailedPrecondition
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusMethodNotAllowed:
		return codes.Unimplemented
	default:
		if statusCode >= 500 {
			return codes.Internal
		}
		return codes.Unknown
	}
}
