// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/rewardpool/kv"
	"github.com/vechain/rewardpool/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State holds uncommitted record changes on top of a kv store.
// A nil value in the stacked map marks a deleted key.
type State struct {
	db kv.Reader
	sm *stackedmap.StackedMap[string, []byte]
}

// New create a state object reading through db.
func New(db kv.Reader) *State {
	s := &State{db: db}
	s.sm = stackedmap.New(s.dbGetter)
	return s
}

// dbGetter implements stackedmap.MapGetter.
func (s *State) dbGetter(key string) ([]byte, bool, error) {
	val, err := s.db.Get([]byte(key))
	if err != nil {
		if kv.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

// GetRaw returns the raw value of key. The returned slice should not be modified.
func (s *State) GetRaw(key []byte) ([]byte, bool, error) {
	val, ok, err := s.sm.Get(string(key))
	if err != nil {
		return nil, false, &Error{err}
	}
	if !ok || val == nil {
		return nil, false, nil
	}
	return val, true, nil
}

// SetRaw stages the raw value of key.
func (s *State) SetRaw(key, val []byte) {
	if val == nil {
		val = []byte{}
	}
	s.sm.Put(string(key), val)
}

// Has returns whether key has a value.
func (s *State) Has(key []byte) (bool, error) {
	_, ok, err := s.GetRaw(key)
	return ok, err
}

// Delete stages removal of key.
func (s *State) Delete(key []byte) {
	s.sm.Put(string(key), nil)
}

// Get decodes the value of key into val.
// It returns false and leaves val untouched if key has no value.
func (s *State) Get(key []byte, val any) (bool, error) {
	raw, ok, err := s.GetRaw(key)
	if err != nil || !ok {
		return false, err
	}
	if err := rlp.DecodeBytes(raw, val); err != nil {
		return false, &Error{errors.Wrapf(err, "decode %x", key)}
	}
	return true, nil
}

// Set encodes val and stages it as the value of key.
func (s *State) Set(key []byte, val any) error {
	raw, err := rlp.EncodeToBytes(val)
	if err != nil {
		return &Error{errors.Wrapf(err, "encode %x", key)}
	}
	s.SetRaw(key, raw)
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Changes returns the number of keys changed since the state was created.
func (s *State) Changes() int {
	return len(s.changes())
}

type change struct {
	key []byte
	val []byte
}

// changes plays back the journal, keeping the last value of each key.
func (s *State) changes() []change {
	var (
		index   = make(map[string]int)
		changes []change
	)
	s.sm.Journal(func(key string, val []byte) bool {
		if i, ok := index[key]; ok {
			changes[i].val = val
		} else {
			index[key] = len(changes)
			changes = append(changes, change{[]byte(key), val})
		}
		return true
	})
	return changes
}

// Commit writes all staged changes into db with one batch.
func (s *State) Commit(db kv.Store) error {
	batch := db.NewBatch()
	for _, c := range s.changes() {
		var err error
		if c.val == nil {
			err = batch.Delete(c.key)
		} else {
			err = batch.Put(c.key, c.val)
		}
		if err != nil {
			return &Error{errors.Wrap(err, "stage")}
		}
	}
	if err := batch.Write(); err != nil {
		return &Error{errors.Wrap(err, "commit")}
	}
	return nil
}
