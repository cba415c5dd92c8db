package approvals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeApprovalService struct {
	Service
	rejectedID     uuid.UUID
	rejectedReason string
}

func (f *fakeApprovalService) Reject(_ context.Context, _, applicationID uuid.UUID, reason string) (*MPPApplicationResponse, error) {
	f.rejectedID = applicationID
	f.rejectedReason = reason
	return &MPPApplicationResponse{}, nil
}

func rejectRequest(t *testing.T, controller *Controller, applicationID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)

	req := httptest.NewRequest(http.MethodPatch, "/mpp/approvals/"+applicationID.String()+"/reject", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
	ctx.Params = gin.Params{{Key: "id", Value: applicationID.String()}}
	ctx.Set("user_id", uuid.New().String())

	controller.RejectApplication(ctx)
	return recorder
}

func TestRejectApplicationWithoutBody(t *testing.T) {
	service := &fakeApprovalService{}
	controller := NewController(service)
	applicationID := uuid.New()

	recorder := rejectRequest(t, controller, applicationID, "")

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 for reasonless rejection, got %d (%s)", recorder.Code, recorder.Body.String())
	}
	if service.rejectedID != applicationID {
		t.Fatalf("expected service.Reject for %s, got %s", applicationID, service.rejectedID)
	}
	if service.rejectedReason != "" {
		t.Fatalf("expected empty reason, got %q", service.rejectedReason)
	}
}

func TestRejectApplicationWithReason(t *testing.T) {
	service := &fakeApprovalService{}
	controller := NewController(service)

	recorder := rejectRequest(t, controller, uuid.New(), `{"reason":"Incomplete documents"}`)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", recorder.Code, recorder.Body.String())
	}
	if service.rejectedReason != "Incomplete documents" {
		t.Fatalf("expected reason to reach the service, got %q", service.rejectedReason)
	}
}

func TestRejectApplicationReasonTooLong(t *testing.T) {
	controller := NewController(&fakeApprovalService{})

	recorder := rejectRequest(t, controller, uuid.New(), `{"reason":"`+strings.Repeat("x", 501)+`"}`)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized reason, got %d", recorder.Code)
	}
}
