package commands

import (
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	vortex "github.com/Giulio2002/vortexhash"
)

type options struct {
	keyHex     string
	bufferSize byteSize
	verbose    bool
	jsonLog    bool
}

// byteSize is a pflag.Value accepting sizes such as 4096, 64KB or 1MB.
type byteSize datasize.ByteSize

func (b *byteSize) Set(s string) error {
	var v datasize.ByteSize
	if err := v.UnmarshalText([]byte(s)); err != nil {
		return err
	}
	if v.Bytes() > maxBufferSize {
		return fmt.Errorf("must be at most %s", datasize.ByteSize(maxBufferSize))
	}
	*b = byteSize(v)
	return nil
}

func (b *byteSize) String() string { return datasize.ByteSize(*b).String() }

func (b *byteSize) Type() string { return "size" }

func (b byteSize) bytes() int { return int(datasize.ByteSize(b).Bytes()) }

const maxBufferSize = uint64(datasize.GB)

func (o *options) flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("vortexsum", pflag.ContinueOnError)
	fs.StringVar(&o.keyHex, "key-hex", "", "hex-encoded HMAC key; when set, print HMAC-Vortex-256 instead of the plain digest")
	o.bufferSize = byteSize(vortex.DefaultBufferSize)
	fs.Var(&o.bufferSize, "buffer-size", "read size when hashing files and stdin, e.g. 4096, 64KB, 1MB")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log tier selection and fallbacks to stderr")
	fs.BoolVar(&o.jsonLog, "log-json", false, "write logs as JSON")
	return fs
}

func (o *options) logger() *vortex.Logger {
	if !o.verbose {
		return vortex.NoopLogger()
	}
	if o.jsonLog {
		return vortex.NewJSONLogger(slog.LevelDebug)
	}
	return vortex.NewTextLogger(slog.LevelDebug)
}

// key decodes --key-hex. keyed is false when the flag was not given; an
// explicitly empty key is a valid HMAC key.
func (o *options) key(cmd *cobra.Command) (key []byte, keyed bool, err error) {
	if !cmd.Flags().Changed("key-hex") {
		return nil, false, nil
	}
	key, err = hex.DecodeString(o.keyHex)
	if err != nil {
		return nil, false, fmt.Errorf("--key-hex: %w", err)
	}
	return key, true, nil
}

func (o *options) dispatcher() *vortex.Dispatcher {
	return vortex.NewDispatcher(vortex.DetectProfile(), vortex.WithLogger(o.logger()))
}
