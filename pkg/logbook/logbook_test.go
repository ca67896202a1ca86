package logbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gosoil/pkg/hal"
	"github.com/itohio/gosoil/pkg/sensor"
)

func TestHeader(t *testing.T) {
	// The interval line and the column header are deliberately joined with
	// no newline; existing card logs depend on this exact byte layout.
	want := "***********************\n" +
		"Interval: 30 minutes apart." +
		"num\tS1\tS2\tS3\tS4\n"
	assert.Equal(t, want, Header(30))
}

func TestRecord(t *testing.T) {
	tests := []struct {
		name string
		seq  uint64
		set  sensor.ReadingSet
		want string
	}{
		{
			name: "typical readings",
			seq:  7,
			set:  sensor.ReadingSet{42, 58, 13, 91},
			want: "7\t42\t58\t13\t91\n",
		},
		{
			name: "first record",
			seq:  1,
			set:  sensor.ReadingSet{0, 100, 50, 50},
			want: "1\t0\t100\t50\t50\n",
		},
		{
			name: "out of range values pass through",
			seq:  12,
			set:  sensor.ReadingSet{-10, 109, 0, 100},
			want: "12\t-10\t109\t0\t100\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Record(tt.seq, tt.set))
		})
	}
}

func TestBook_WriteHeader(t *testing.T) {
	store := hal.NewMemStorage()
	book := New(store, "/datalog.txt")

	require.NoError(t, book.WriteHeader(30))

	assert.Equal(t, Header(30), store.Contents("/datalog.txt"))
	assert.Equal(t, 1, store.Opens)
}

func TestBook_AppendTransaction(t *testing.T) {
	store := hal.NewMemStorage()
	book := New(store, "/datalog.txt")

	tx, err := book.Begin()
	require.NoError(t, err)
	require.NoError(t, tx.Append(7, sensor.ReadingSet{42, 58, 13, 91}))
	require.NoError(t, tx.Close())

	assert.Equal(t, "7\t42\t58\t13\t91\n", store.Contents("/datalog.txt"))
}

func TestBook_BeginFailure(t *testing.T) {
	store := hal.NewMemStorage()
	store.FailAll = true
	book := New(store, "/datalog.txt")

	tx, err := book.Begin()
	assert.Error(t, err)
	assert.Nil(t, tx)
	assert.Empty(t, store.Contents("/datalog.txt"))
}

func TestTx_CloseIsIdempotent(t *testing.T) {
	store := hal.NewMemStorage()
	book := New(store, "/datalog.txt")

	tx, err := book.Begin()
	require.NoError(t, err)
	require.NoError(t, tx.Close())
	require.NoError(t, tx.Close())

	assert.Error(t, tx.Append(1, sensor.ReadingSet{}))
}

func TestBook_RecordsAccumulate(t *testing.T) {
	store := hal.NewMemStorage()
	book := New(store, "/datalog.txt")

	require.NoError(t, book.WriteHeader(30))
	for seq := uint64(1); seq <= 3; seq++ {
		tx, err := book.Begin()
		require.NoError(t, err)
		require.NoError(t, tx.Append(seq, sensor.ReadingSet{50, 50, 50, 50}))
		require.NoError(t, tx.Close())
	}

	want := Header(30) +
		"1\t50\t50\t50\t50\n" +
		"2\t50\t50\t50\t50\n" +
		"3\t50\t50\t50\t50\n"
	assert.Equal(t, want, store.Contents("/datalog.txt"))
	assert.Equal(t, 4, store.Opens) // one per transaction, never held open
}
