package network

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func sampleGraph(t *testing.T, seed int64) *Graph {
	t.Helper()
	g, err := Generate(rand.New(rand.NewSource(seed)), GenerateOptions{
		NodeCount:     80,
		MinorityCount: 8,
		Degree:        4,
		Lambda:        1,
		Topology:      SampleRandom,
		Trait:         AssignTraitsRandom,
		Support:       mustSupport("uniform"),
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return g
}

func TestSerializeAndDeserializeGraph(t *testing.T) {
	g := sampleGraph(t, 1)

	nxGraph := SerializeGraph(g)
	deserialized := DeserializeGraph(nxGraph)

	if !CompareGraphs(g, deserialized) {
		t.Errorf("original graph and deserialized graph are not equal")
	}
}

func TestSaveAndLoadGraphToFile(t *testing.T) {
	g := sampleGraph(t, 2)

	filename := filepath.Join(t.TempDir(), "test_graph.msgpack")
	if err := SaveGraphToFile(g, filename); err != nil {
		t.Fatalf("failed to save graph to file: %v", err)
	}

	loaded, err := LoadGraphFromFile(filename)
	if err != nil {
		t.Fatalf("failed to load graph from file: %v", err)
	}

	if !CompareGraphs(g, loaded) {
		t.Errorf("original graph and loaded graph are not equal")
	}
}

func TestEmitAllWritesOneFilePerGraph(t *testing.T) {
	dir := t.TempDir()
	graphs := []*Graph{sampleGraph(t, 3), sampleGraph(t, 4), sampleGraph(t, 5)}

	paths, err := EmitAll(dir, graphs)
	if err != nil {
		t.Fatalf("EmitAll failed: %v", err)
	}
	if len(paths) != len(graphs) {
		t.Fatalf("expected %d files, got %d", len(graphs), len(paths))
	}

	leftover, err := LeftoverFiles(dir)
	if err != nil {
		t.Fatalf("LeftoverFiles failed: %v", err)
	}
	if len(leftover) != len(graphs) {
		t.Errorf("expected %d network files on disk, got %d", len(graphs), len(leftover))
	}

	for i, path := range paths {
		loaded, err := LoadGraphFromFile(path)
		if err != nil {
			t.Fatalf("failed to load emitted file %s: %v", path, err)
		}
		if !CompareGraphs(graphs[i], loaded) {
			t.Errorf("emitted file %d does not round-trip", i)
		}
	}
}

func TestEmitAllRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	graphs := []*Graph{sampleGraph(t, 6)}

	if _, err := EmitAll(dir, graphs); err != nil {
		t.Fatalf("first EmitAll failed: %v", err)
	}
	if _, err := EmitAll(dir, graphs); err == nil {
		t.Errorf("expected error when emitting over existing files")
	}
}

func TestRemoveFilesLeavesNoNetworkFiles(t *testing.T) {
	dir := t.TempDir()
	graphs := []*Graph{sampleGraph(t, 7), sampleGraph(t, 8)}

	paths, err := EmitAll(dir, graphs)
	if err != nil {
		t.Fatalf("EmitAll failed: %v", err)
	}

	if err := RemoveFiles(paths); err != nil {
		t.Fatalf("RemoveFiles failed: %v", err)
	}

	leftover, err := LeftoverFiles(dir)
	if err != nil {
		t.Fatalf("LeftoverFiles failed: %v", err)
	}
	if len(leftover) != 0 {
		t.Errorf("expected no leftover network files, got %v", leftover)
	}

	// deleting already deleted files is fine
	if err := RemoveFiles(paths); err != nil {
		t.Errorf("second RemoveFiles failed: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("run directory should survive cleanup: %v", err)
	}
}
