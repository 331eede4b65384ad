package netlink

// DummyRadio associates instantly (or never, when Offline is set). Used by
// the dev entrypoint and the bench server.
type DummyRadio struct {
	Offline bool
}

func (d *DummyRadio) Associate(string, string) error { return nil }

func (d *DummyRadio) IsConnected() (bool, error) { return !d.Offline, nil }
