package core

// MessagingQueues holds the per-login FIFO queues: private notices and
// community messages. Queues are unbounded and in-memory; a read consumes
// the oldest entry.
type MessagingQueues struct {
	notices  map[string][]string
	messages map[string][]string
}

func NewMessagingQueues() *MessagingQueues {
	q := &MessagingQueues{}
	q.reset()
	return q
}

func (q *MessagingQueues) reset() {
	q.notices = make(map[string][]string)
	q.messages = make(map[string][]string)
}

func (q *MessagingQueues) PushNotice(login, text string) {
	q.notices[login] = append(q.notices[login], text)
}

func (q *MessagingQueues) PopNotice(login string) (string, error) {
	queue := q.notices[login]
	if len(queue) == 0 {
		return "", ErrNoNotices
	}
	q.notices[login] = queue[1:]
	return queue[0], nil
}

func (q *MessagingQueues) PushMessage(login, text string) {
	q.messages[login] = append(q.messages[login], text)
}

func (q *MessagingQueues) PopMessage(login string) (string, error) {
	queue := q.messages[login]
	if len(queue) == 0 {
		return "", ErrNoMessages
	}
	q.messages[login] = queue[1:]
	return queue[0], nil
}

func (q *MessagingQueues) Notices(login string) []string {
	return q.notices[login]
}

func (q *MessagingQueues) Messages(login string) []string {
	return q.messages[login]
}

// PurgeAll empties every user's queues. The account removal cascade calls
// this for all remaining users.
func (q *MessagingQueues) PurgeAll() {
	q.reset()
}

func (q *MessagingQueues) DropUser(login string) {
	delete(q.notices, login)
	delete(q.messages, login)
}

func (q *MessagingQueues) Clear() {
	q.reset()
}
