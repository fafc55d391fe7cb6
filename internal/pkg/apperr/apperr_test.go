package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	upstream := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "tagged", err: New(KindNotFound, "no content"), want: KindNotFound},
		{name: "wrapped tag survives fmt.Errorf", err: fmt.Errorf("outer: %w", New(KindAnswerNotFound, "no quiz")), want: KindAnswerNotFound},
		{name: "wrap keeps cause", err: Wrap(KindUpstream, "embedding call failed", upstream), want: KindUpstream},
		{name: "untagged defaults to internal", err: upstream, want: KindInternal},
		{name: "nil-cause message only", err: Newf(KindValidation, "count %d out of range", 99), want: KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindUpstream, "call failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "call failed")
	assert.Contains(t, err.Error(), "boom")
}
