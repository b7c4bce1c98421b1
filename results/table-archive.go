package results

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"

	"movement-sim/engine"
)

// SaveTable writes an lz4-compressed binary dump of a raw result table, for
// re-analysis after the in-memory table is released.
func SaveTable(path string, t *engine.Table) error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("empty result table")
	}

	var buf bytes.Buffer

	count := int32(len(t.Rows))
	binary.Write(&buf, binary.LittleEndian, count)

	for _, row := range t.Rows {
		binary.Write(&buf, binary.LittleEndian, int32(row.Run))
		binary.Write(&buf, binary.LittleEndian, int32(row.Tick))
		binary.Write(&buf, binary.LittleEndian, row.Node)
		binary.Write(&buf, binary.LittleEndian, row.Support)
	}

	var out bytes.Buffer
	w := lz4.NewWriter(&out)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return os.WriteFile(path, out.Bytes(), 0644)
}

// LoadTable reads a table dump written by SaveTable.
func LoadTable(path string) (*engine.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	r := lz4.NewReader(bytes.NewReader(raw))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}

	reader := bytes.NewReader(buf.Bytes())

	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("corrupt table archive %s: negative row count %d", path, count)
	}
	// each row is two int32 plus an int64 plus a float64
	const rowSize = 4 + 4 + 8 + 8
	if int64(count)*rowSize != int64(reader.Len()) {
		return nil, fmt.Errorf("corrupt table archive %s: %d rows do not match %d payload bytes",
			path, count, reader.Len())
	}

	table := engine.NewTable()
	table.Rows = make([]engine.Row, count)
	for i := range table.Rows {
		var run, tick int32
		if err := binary.Read(reader, binary.LittleEndian, &run); err != nil {
			return nil, err
		}
		if err := binary.Read(reader, binary.LittleEndian, &tick); err != nil {
			return nil, err
		}
		if err := binary.Read(reader, binary.LittleEndian, &table.Rows[i].Node); err != nil {
			return nil, err
		}
		if err := binary.Read(reader, binary.LittleEndian, &table.Rows[i].Support); err != nil {
			return nil, err
		}
		table.Rows[i].Run = int(run)
		table.Rows[i].Tick = int(tick)
	}

	return table, nil
}
