package network

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// NetworkFilePattern is the glob matching emitted replicate network files.
const NetworkFilePattern = "network_*.msgpack"

// EmitAll serializes each graph into dir as network_<i>.msgpack and returns
// the paths in replicate order. An already existing file is an error: the
// caller deletes its own files, never someone else's.
func EmitAll(dir string, graphs []*Graph) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(graphs))
	for i, g := range graphs {
		path := filepath.Join(dir, fmt.Sprintf("network_%d.msgpack", i+1))

		data, err := msgpack.Marshal(SerializeGraph(g))
		if err != nil {
			return paths, err
		}

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			return paths, err
		}
		_, writeErr := file.Write(data)
		closeErr := file.Close()
		if writeErr != nil {
			return paths, writeErr
		}
		if closeErr != nil {
			return paths, closeErr
		}

		paths = append(paths, path)
	}

	return paths, nil
}

// RemoveFiles deletes the emitted network files after results are captured.
func RemoveFiles(paths []string) error {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// LeftoverFiles lists network files still present in dir.
func LeftoverFiles(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, NetworkFilePattern))
}
