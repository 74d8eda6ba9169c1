package finder

// queue 待遍历目录的 FIFO 队列
type queue struct {
	items []string
}

func newQueue() *queue {
	return &queue{}
}

func (q *queue) push(dir string) {
	q.items = append(q.items, dir)
}

func (q *queue) pop() string {
	dir := q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]
	return dir
}

func (q *queue) len() int {
	return len(q.items)
}
