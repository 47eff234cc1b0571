package ledger

import "time"

// Recorder stamps entries with today's date and appends them to the store.
// It does not validate the type tag or the amount.
type Recorder struct {
	store *Store
	now   func() time.Time
}

func NewRecorder(store *Store) *Recorder {
	return &Recorder{store: store, now: time.Now}
}

// WithClock replaces the clock used to date new entries.
func (r *Recorder) WithClock(now func() time.Time) *Recorder {
	r.now = now
	return r
}

func (r *Recorder) Record(kind, description, amount string) (Entry, error) {
	entry := Entry{
		Date:        r.now(),
		Type:        kind,
		Description: description,
		Amount:      amount,
	}
	if err := r.store.Append(entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}
