package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"mshell/internal/core"
)

const cmpChunk = 4096

// cmpResult хранит итог побайтового сравнения: differing считается по
// общей части, lengthDiff хранит разницу длин.
type cmpResult struct {
	differing  int64
	lengthDiff int64
}

func cmp(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 2 {
		return core.Usage("cmp <path1> <path2>")
	}
	f1, err := openArg(env, args[0])
	if err != nil {
		return err
	}
	defer f1.Close()
	f2, err := openArg(env, args[1])
	if err != nil {
		return err
	}
	defer f2.Close()

	res, err := compareReaders(f1, f2)
	if err != nil {
		return err
	}
	switch {
	case res.differing == 0 && res.lengthDiff == 0:
		fmt.Fprintln(env.Out, "Files are identical")
	case res.lengthDiff == 0:
		fmt.Fprintf(env.Out, "Found %d differing bytes\n", res.differing)
	default:
		fmt.Fprintf(env.Out, "Files differ in length by %d bytes\nAdditionally found %d differing bytes\n", res.lengthDiff, res.differing)
	}
	return nil
}

func openArg(env *core.Env, name string) (*os.File, error) {
	path, err := env.Abs(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewSyscallError("failed to open", name, err)
	}
	return f, nil
}

func compareReaders(r1, r2 io.Reader) (cmpResult, error) {
	var res cmpResult
	buf1 := make([]byte, cmpChunk)
	buf2 := make([]byte, cmpChunk)
	for {
		n1, err := readChunk(r1, buf1)
		if err != nil {
			return res, err
		}
		n2, err := readChunk(r2, buf2)
		if err != nil {
			return res, err
		}
		for i := 0; i < min(n1, n2); i++ {
			if buf1[i] != buf2[i] {
				res.differing++
			}
		}
		if n1 != n2 {
			longer := r1
			if n2 > n1 {
				longer = r2
			}
			rest, err := io.Copy(io.Discard, longer)
			if err != nil {
				return res, fmt.Errorf("read: %w", err)
			}
			res.lengthDiff = int64(max(n1, n2)-min(n1, n2)) + rest
			return res, nil
		}
		if n1 < cmpChunk {
			return res, nil
		}
	}
}

// readChunk заполняет buf целиком, кроме последнего куска файла.
func readChunk(r io.Reader, buf []byte) (int, error) {
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return n, fmt.Errorf("read: %w", err)
	}
	return n, nil
}
