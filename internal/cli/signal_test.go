package cli_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pvalue/internal/cli"
)

func TestSignalContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	sc := cli.NewSignalContext(parent)
	defer sc.Stop()

	cancel()

	select {
	case <-sc.Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled with its parent")
	}
	assert.ErrorIs(t, sc.Err(), context.Canceled)
	assert.Nil(t, sc.Signal())
}

func TestSignalContext_Stop(t *testing.T) {
	sc := cli.NewSignalContext(context.Background())
	require.NoError(t, sc.Err())

	sc.Stop()
	sc.Stop()

	<-sc.Done()
	assert.ErrorIs(t, sc.Err(), context.Canceled)
	assert.Nil(t, sc.Signal())
}
