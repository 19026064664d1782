package commands

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vortex "github.com/Giulio2002/vortexhash"
)

const abcDigest = "353bca374c16e1ead83e74205b6d3845fc855288242c7f1080d7f11b983de0c3"

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSumStdin(t *testing.T) {
	out, _, err := run(t, "abc")
	require.NoError(t, err)
	assert.Equal(t, abcDigest+"  -\n", out)

	for _, size := range []string{"1", "64B", "4KB", "1MB"} {
		out, _, err = run(t, "abc", "-", "--buffer-size", size)
		require.NoError(t, err, size)
		assert.Equal(t, abcDigest+"  -\n", out)
	}

	_, _, err = run(t, "abc", "--buffer-size", "lots")
	assert.Error(t, err)
	_, _, err = run(t, "abc", "--buffer-size", "2GB")
	assert.Error(t, err)
}

func TestByteSizeFlag(t *testing.T) {
	var b byteSize
	require.NoError(t, b.Set("64KB"))
	assert.Equal(t, 64*1024, b.bytes())
	assert.Equal(t, "64KB", b.String())
	assert.Equal(t, "size", b.Type())
}

func TestSumFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "abc")
	b := writeFile(t, dir, "b.txt", "hello")

	out, _, err := run(t, "", a, b)
	require.NoError(t, err)
	want := fmt.Sprintf("%s  %s\n%s  %s\n", abcDigest, a, vortex.Sum([]byte("hello")), b)
	assert.Equal(t, want, out)

	_, _, err = run(t, "", filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSumKeyed(t *testing.T) {
	key := []byte("key")
	msg := "The quick brown fox jumps over the lazy dog"

	out, _, err := run(t, msg, "--key-hex", hex.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, vortex.HMAC(key, []byte(msg)).Hex()+"  -\n", out)

	out, _, err = run(t, msg, "--key-hex", "")
	require.NoError(t, err)
	assert.Equal(t, vortex.HMAC(nil, []byte(msg)).Hex()+"  -\n", out)

	_, _, err = run(t, msg, "--key-hex", "zz")
	assert.ErrorContains(t, err, "--key-hex")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "abc")
	b := writeFile(t, dir, "b.txt", "hello")

	list := writeFile(t, dir, "SUMS", fmt.Sprintf("%s  %s\n\n%s  %s\n", abcDigest, a, vortex.Sum([]byte("hello")), b))
	out, _, err := run(t, "", "check", list)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s: OK\n%s: OK\n", a, b), out)

	require.NoError(t, os.WriteFile(b, []byte("hellO"), 0o600))
	out, _, err = run(t, "", "check", list)
	assert.ErrorIs(t, err, errChecksumMismatch)
	assert.Contains(t, out, b+": FAILED")

	bad := writeFile(t, dir, "BAD", "not-a-digest  "+a+"\nnospaces\n")
	_, stderr, err := run(t, "", "check", bad)
	require.NoError(t, err)
	assert.Contains(t, stderr, "2 line(s) improperly formatted")
}

func TestCheckKeyed(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "abc")
	key := hex.EncodeToString([]byte("secret"))

	sums, _, err := run(t, "", "--key-hex", key, a)
	require.NoError(t, err)
	list := writeFile(t, dir, "SUMS", sums)

	_, _, err = run(t, "", "check", "--key-hex", key, list)
	require.NoError(t, err)

	_, _, err = run(t, "", "check", list)
	assert.ErrorIs(t, err, errChecksumMismatch)
}

func TestInteractive(t *testing.T) {
	out, _, err := run(t, "abc\n\n  hello  \nexit\nignored\n", "interactive")
	require.NoError(t, err)
	assert.Contains(t, out, "Input: abc\nHash:  "+abcDigest)
	assert.Contains(t, out, "Input: hello\n")
	assert.NotContains(t, out, "ignored")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestProfile(t *testing.T) {
	out, _, err := run(t, "", "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "running:")
	assert.Contains(t, out, "T0")
	assert.Contains(t, out, "scalar")

	_, _, err = run(t, "", "profile", "extra")
	assert.Error(t, err)
}
