package cpu

const (
	// INTERRUPT_QUEUE_CAPACITY is the maximum number of pending interrupt
	// messages. Enqueueing past this limit freezes the CPU.
	INTERRUPT_QUEUE_CAPACITY = 256
)

// InterruptQueue is a bounded FIFO of pending interrupt messages.
type InterruptQueue struct {
	messages [INTERRUPT_QUEUE_CAPACITY]uint16
	head     int
	count    int
}

// Enqueue appends a message to the queue. Returns false if the queue is
// already at capacity, leaving the queue untouched.
func (q *InterruptQueue) Enqueue(message uint16) (ok bool) {
	if q.count == INTERRUPT_QUEUE_CAPACITY {
		return
	}

	q.messages[(q.head+q.count)%INTERRUPT_QUEUE_CAPACITY] = message
	q.count++
	ok = true
	return
}

// Dequeue removes and returns the oldest message.
func (q *InterruptQueue) Dequeue() (message uint16, ok bool) {
	if q.count == 0 {
		return
	}

	message = q.messages[q.head]
	q.head = (q.head + 1) % INTERRUPT_QUEUE_CAPACITY
	q.count--
	ok = true
	return
}

// Len returns the number of pending messages.
func (q *InterruptQueue) Len() int {
	return q.count
}
