package streams

import (
	"encoding/binary"
	"hash/fnv"
)

// PartitionedQueue routes messages to a fixed set of buffered channels by
// hashing a partition key. All messages sharing a key land on the same
// partition, so a single consumer per partition sees them sequentially.
// The analyzer keys by client id: one client's event group is always handled
// by exactly one worker, which is what keeps sessionization free of shared
// mutable state across clients.
type PartitionedQueue[T any] struct {
	partitions []chan T
}

const (
	defaultBuffer = 64
)

func NewPartitionedQueue[T any](numPartitions int) *PartitionedQueue[T] {
	channels := make([]chan T, numPartitions)
	for i := range channels {
		channels[i] = make(chan T, defaultBuffer)
	}
	return &PartitionedQueue[T]{partitions: channels}
}

func (queue *PartitionedQueue[T]) PartitionCount() int { return len(queue.partitions) }

// Partition exposes one partition for a consumer goroutine.
func (queue *PartitionedQueue[T]) Partition(i int) <-chan T {
	return queue.partitions[i]
}

func (queue *PartitionedQueue[T]) Publish(partitionKey string, msg T) {
	idx := partitionIndex(partitionKey, len(queue.partitions))
	queue.partitions[idx] <- msg
}

// Close closes every partition; consumers drain and exit.
func (queue *PartitionedQueue[T]) Close() {
	for _, ch := range queue.partitions {
		close(ch)
	}
}

func partitionIndex(key string, n int) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	sum := hash.Sum(nil)
	v := binary.LittleEndian.Uint32(sum)
	return int(v % uint32(n))
}
