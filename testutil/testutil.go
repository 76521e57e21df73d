package testutil

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/hupe1980/distcache/core"
	"github.com/hupe1980/distcache/knn"
	"github.com/hupe1980/distcache/varint"
)

const (
	matrixFixedHeaderSize = 16
	matrixTriangleExtra   = 4
	doubleSize            = 8
)

// EncodeDoubleMatrix returns the contents of an upper-triangle matrix file
// with 8-byte float64 records for an n×n symmetric matrix. dist is queried
// for every pair (i, j) with i <= j in row-major order.
func EncodeDoubleMatrix(magic uint32, n int, dist func(i, j int) float64) []byte {
	numRecords := n * (n + 1) / 2
	headerSize := matrixFixedHeaderSize + matrixTriangleExtra

	buf := make([]byte, headerSize, headerSize+numRecords*doubleSize)
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(headerSize))
	binary.LittleEndian.PutUint32(buf[8:12], doubleSize)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(numRecords))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(n))

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(dist(i, j)))
		}
	}
	return buf
}

// WriteDoubleMatrixFile writes EncodeDoubleMatrix output to path.
func WriteDoubleMatrixFile(path string, magic uint32, n int, dist func(i, j int) float64) error {
	return os.WriteFile(path, EncodeDoubleMatrix(magic, n, dist), 0o644)
}

// KNNRecord is one object's entry in a kNN cache file.
type KNNRecord struct {
	ID        core.ObjectID
	Neighbors knn.NeighborList
}

// EncodeKNNCache returns the contents of a kNN cache file holding the given
// records in order.
func EncodeKNNCache(magic uint32, records []KNNRecord) []byte {
	buf := binary.LittleEndian.AppendUint32(nil, magic)
	for _, rec := range records {
		buf = varint.Append(buf, uint64(rec.ID))
		buf = varint.Append(buf, uint64(len(rec.Neighbors)))
		for _, e := range rec.Neighbors {
			buf = varint.Append(buf, uint64(e.ID))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Distance))
		}
	}
	return buf
}

// WriteKNNCacheFile writes EncodeKNNCache output to path.
func WriteKNNCacheFile(path string, magic uint32, records []KNNRecord) error {
	return os.WriteFile(path, EncodeKNNCache(magic, records), 0o644)
}
