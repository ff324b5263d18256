package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/chiquitav2/user-console/pkg/errors"
)

func TestStartOp_CompleteAndFail(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(&buf, LevelDebug)

	ctx, op := log.StartOp(context.Background(), "delete_user", "user_id", 7)
	if got, _ := ctx.Value(OperationKey).(string); got != "delete_user" {
		t.Fatalf("expected operation in context, got %q", got)
	}
	if op.Name() != "delete_user" || op.Context() != ctx {
		t.Fatal("operation does not expose its name and context")
	}

	op.With("attempt", 1).Complete("")
	op.Fail(errors.NewHTTPError(404, "User not found"), "")

	entries := decodeEntries(t, &buf)
	if len(entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(entries))
	}

	started, completed, failed := entries[0], entries[1], entries[2]
	if started["msg"] != "operation started" || started["level"] != "DEBUG" {
		t.Errorf("unexpected start entry: %v", started)
	}
	if completed["msg"] != "operation completed" || completed["attempt"] != float64(1) {
		t.Errorf("unexpected completion entry: %v", completed)
	}
	if _, ok := completed["elapsed"]; !ok {
		t.Error("completion entry has no elapsed time")
	}

	if failed["level"] != "WARN" {
		t.Errorf("expected WARN for failure, got %v", failed["level"])
	}
	if failed["operation"] != "delete_user" || failed["user_id"] != float64(7) {
		t.Errorf("failure entry lost operation attributes: %v", failed)
	}
	if failed["error_domain"] != errors.DomainHTTP || failed["error_code"] != errors.ErrCodeNotFound {
		t.Errorf("failure entry lost error classification: %v", failed)
	}
	if failed["status"] != float64(404) {
		t.Errorf("expected status 404, got %v", failed["status"])
	}
}

func TestStartOp_QuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newJSONLogger(&buf, LevelInfo)

	_, op := log.StartOp(context.Background(), "list_roles")
	op.Progress("halfway")
	op.Complete("done")

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %s", buf.String())
	}
}
