package ledger

// maintaining index keys for querying data in various ways

import (
	"encoding/json"
	"fmt"
	"strconv"

	"estateshares/sdk"
)

// all indexes are split into chunks of X entries to avoid overflowing the max
// size of a single value in host storage
const maxChunkSize = 2500

// chunkCounterKey stores number of chunks for a base index
func chunkCounterKey(base string) string {
	return base + ":chunks"
}

func chunkKey(base string, chunk int) string {
	return base + ":" + strconv.Itoa(chunk)
}

// getChunkCount returns the number of chunks for an index
func getChunkCount(st sdk.State, baseKey string) int {
	ptr := st.Get(chunkCounterKey(baseKey))
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, _ := strconv.Atoi(*ptr)
	return n
}

func setChunkCount(st sdk.State, baseKey string, n int) {
	st.Set(chunkCounterKey(baseKey), strconv.Itoa(n))
}

// addIDToIndex ensures id exists across all chunks (no duplicates). Appends
// keep insertion order so iteration mirrors registration order.
func addIDToIndex(st sdk.State, baseKey string, id uint64) {
	chunks := getChunkCount(st, baseKey)
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := st.Get(key)
		var ids []uint64
		if ptr != nil && *ptr != "" {
			if err := json.Unmarshal([]byte(*ptr), &ids); err != nil {
				panic(fmt.Sprintf("unmarshal index %s: %v", key, err))
			}
			for _, e := range ids {
				if e == id {
					return // already present
				}
			}
			if len(ids) < maxChunkSize {
				ids = append(ids, id)
				b, err := json.Marshal(ids)
				if err != nil {
					panic(fmt.Sprintf("marshal index %s: %v", key, err))
				}
				st.Set(key, string(b))
				return
			}
		}
	}
	// not found / no space -> create new chunk
	key := chunkKey(baseKey, chunks)
	b, err := json.Marshal([]uint64{id})
	if err != nil {
		panic(fmt.Sprintf("marshal index %s: %v", key, err))
	}
	st.Set(key, string(b))
	setChunkCount(st, baseKey, chunks+1)
}

// removeIDFromIndex removes id from whichever chunk it's in, shifting the
// remaining entries left so relative order is untouched.
func removeIDFromIndex(st sdk.State, baseKey string, id uint64) {
	chunks := getChunkCount(st, baseKey)
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := st.Get(key)
		if ptr == nil || *ptr == "" {
			continue
		}
		var ids []uint64
		if err := json.Unmarshal([]byte(*ptr), &ids); err != nil {
			panic(fmt.Sprintf("unmarshal index %s: %v", key, err))
		}
		newIds := ids[:0]
		found := false
		for _, e := range ids {
			if e == id {
				found = true
				continue
			}
			newIds = append(newIds, e)
		}
		if found {
			b, err := json.Marshal(newIds)
			if err != nil {
				panic(fmt.Sprintf("marshal index %s: %v", key, err))
			}
			st.Set(key, string(b))
		}
	}
}

// idsFromIndex collects all IDs across all chunks.
func idsFromIndex(st sdk.State, baseKey string) []uint64 {
	all := []uint64{}
	chunks := getChunkCount(st, baseKey)
	for i := 0; i < chunks; i++ {
		key := chunkKey(baseKey, i)
		ptr := st.Get(key)
		if ptr == nil || *ptr == "" {
			continue
		}
		var ids []uint64
		if err := json.Unmarshal([]byte(*ptr), &ids); err != nil {
			panic(fmt.Sprintf("unmarshal index %s: %v", key, err))
		}
		all = append(all, ids...)
	}
	return all
}
