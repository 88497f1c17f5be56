package routes

import (
	"testing"

	"github.com/shashiranjanraj/launchpad/pkg/testkit"
)

// Scenario files live in testdata/api; request and expected-response bodies
// in testdata/api/bodies so the directory runner doesn't pick them up as
// scenarios. Every scenario here is read-only or a rejected write, so they
// can share one handler in any order.
func TestAPIScenarios(t *testing.T) {
	testkit.RunDir(t, newTestHandler(t), "testdata/api")
}
