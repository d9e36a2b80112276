package rxcore

type task struct {
	fn    func() error
	reply chan<- error
}

func sendOnly(fn func()) task {
	return task{
		fn: func() error {
			fn()
			return nil
		},
	}
}

func request(fn func() error, reply chan<- error) task {
	return task{
		fn:    fn,
		reply: reply,
	}
}

func (t task) run() error {
	var err error
	if rerr := Recover(func() { err = t.fn() }); rerr != nil {
		err = rerr
	}
	if t.reply != nil {
		t.reply <- err
	}
	return err
}

func (t task) replies() bool {
	return t.reply != nil
}
