package testutil

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// AssertErrorIs checks that err matches target with errors.Is.
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error matching %v, got nil", target)
	}
	if !errors.Is(err, target) {
		t.Fatalf("expected error matching %v, got %T: %v", target, err, err)
	}
}

// ObservedLogger returns a debug level sugared logger whose entries are recorded in logs.
func ObservedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

// FieldValues returns the string value of field for every entry of logs with message msg.
func FieldValues(logs *observer.ObservedLogs, msg, field string) []string {
	var values []string
	for _, e := range logs.FilterMessage(msg).All() {
		if v, ok := e.ContextMap()[field].(string); ok {
			values = append(values, v)
		}
	}
	return values
}
