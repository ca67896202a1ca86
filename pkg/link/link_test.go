package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Record
		wantErr bool
	}{
		{
			name: "typical record",
			line: "7\t42\t58\t13\t91",
			want: Record{
				Seq:    7,
				Values: [4]int{42, 58, 13, 91},
			},
			wantErr: false,
		},
		{
			name: "first record",
			line: "1\t0\t100\t50\t50",
			want: Record{
				Seq:    1,
				Values: [4]int{0, 100, 50, 50},
			},
			wantErr: false,
		},
		{
			name: "out of range values pass through",
			line: "12\t-10\t109\t0\t100",
			want: Record{
				Seq:    12,
				Values: [4]int{-10, 109, 0, 100},
			},
			wantErr: false,
		},
		{
			name:    "invalid - too few fields",
			line:    "7\t42\t58\t13",
			wantErr: true,
		},
		{
			name:    "invalid - too many fields",
			line:    "7\t42\t58\t13\t91\t5",
			wantErr: true,
		},
		{
			name:    "invalid - non-numeric sequence",
			line:    "abc\t42\t58\t13\t91",
			wantErr: true,
		},
		{
			name:    "invalid - negative sequence",
			line:    "-1\t42\t58\t13\t91",
			wantErr: true,
		},
		{
			name:    "invalid - non-numeric value",
			line:    "7\t42\tabc\t13\t91",
			wantErr: true,
		},
		{
			name:    "invalid - diagnostic chatter",
			line:    "card ready, logging every 30 min",
			wantErr: true,
		},
		{
			name:    "invalid - comma separated",
			line:    "7,42,58,13,91",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	d := New("/dev/ttyACM0", 0, 0)

	assert.Equal(t, DefaultBaudRate, d.baudRate)
	assert.Equal(t, DefaultBufferSize, d.bufSize)
	assert.NotNil(t, d.records)
	assert.False(t, d.IsConnected())
}

func TestSerial_CloseWithoutConnect(t *testing.T) {
	d := New("/dev/ttyACM0", 0, 0)
	assert.NoError(t, d.Close())
}
