package firebase

import "testing"

func TestChunkTokens(t *testing.T) {
	tokens := make([]string, 1250)
	for i := range tokens {
		tokens[i] = "token"
	}

	chunks := chunkTokens(tokens, 500)
	if len(chunks) != 3 {
		t.Fatalf("chunked into %d batches, want 3", len(chunks))
	}
	if len(chunks[0]) != 500 || len(chunks[1]) != 500 || len(chunks[2]) != 250 {
		t.Errorf("chunk sizes = %d, %d, %d; want 500, 500, 250", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestChunkTokens_SmallBatch(t *testing.T) {
	chunks := chunkTokens([]string{"a", "b"}, 500)
	if len(chunks) != 1 || len(chunks[0]) != 2 {
		t.Errorf("chunks = %v, want a single batch of 2", chunks)
	}
}

func TestChunkTokens_Empty(t *testing.T) {
	if chunks := chunkTokens(nil, 500); chunks != nil {
		t.Errorf("chunkTokens(nil) = %v, want nil", chunks)
	}
}
