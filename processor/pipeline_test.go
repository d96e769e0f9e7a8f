package processor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("Order ID,Sales\nCA-2016-152156,261.96\n"), 50)

	packed := PackSnapshot("csv:orders.csv:100:42", payload)
	assert.Less(t, len(packed), len(payload))

	fp, got, err := UnpackSnapshot(packed)
	require.NoError(t, err)
	assert.Equal(t, "csv:orders.csv:100:42", fp)
	assert.Equal(t, payload, got)
}

func TestUnpackSnapshotRejectsGarbage(t *testing.T) {
	_, _, err := UnpackSnapshot([]byte("not a snapshot"))
	assert.ErrorIs(t, err, ErrBadSnapshot)

	_, _, err = UnpackSnapshot(append([]byte("SSDSNAP1\n"), []byte("no newline")...))
	assert.ErrorIs(t, err, ErrBadSnapshot)

	_, _, err = UnpackSnapshot([]byte("SSDSNAP1\nfp\n\xff\xff\xff"))
	assert.ErrorIs(t, err, ErrBadSnapshot)
}

func TestSnapshotEmptyPayload(t *testing.T) {
	fp, out, err := UnpackSnapshot(PackSnapshot("", nil))
	require.NoError(t, err)
	assert.Empty(t, fp)
	assert.Empty(t, out)
}
