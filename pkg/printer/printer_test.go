package printer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrinterFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"none", Config{Type: TypeNone}, false},
		{"empty type", Config{}, false},
		{"usb without path", Config{Type: TypeUSB}, true},
		{"usb", Config{Type: TypeUSB, USBPath: "/dev/usb/lp0"}, false},
		{"network without address", Config{Type: TypeNetwork}, true},
		{"network", Config{Type: TypeNetwork, Address: "127.0.0.1:9100"}, false},
		{"file without path", Config{Type: TypeFile}, true},
		{"unknown", Config{Type: "bluetooth"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPrinterFromConfig(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestNullPrinter(t *testing.T) {
	p := NewNullPrinter()

	assert.NoError(t, p.Print([]byte("ignored")))
	assert.False(t, p.IsConnected())
	assert.NoError(t, p.Close())
}

func TestFilePrinter_AppendsJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipts.spool")
	p, err := NewPrinterFromConfig(Config{Type: TypeFile, FilePath: path})
	require.NoError(t, err)

	require.NoError(t, p.Print([]byte("one\n")))
	require.NoError(t, p.Print([]byte("two\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
	assert.True(t, p.IsConnected())
}

func TestUSBPrinter_MissingDevice(t *testing.T) {
	p := NewUSBPrinter(filepath.Join(t.TempDir(), "lp0"))

	assert.False(t, p.IsConnected())
	assert.Error(t, p.Print([]byte("x")))
}
