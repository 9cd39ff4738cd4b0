// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

var (
	mu         sync.RWMutex
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE        flag = 0
	ARCHIVE     flag = 1
	ROM         flag = 1 << 6
	USERDEFINED flag = 1 << 17 // cvar was created by a config file, not by the program.
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	id           int
}

// All returns the cvars in registration order.
func All() []*Cvar {
	mu.RLock()
	defer mu.RUnlock()
	return append([]*Cvar(nil), cvarArray...)
}

func (cv *Cvar) Archive() bool {
	return cv.archive
}

func (cv *Cvar) UserDefined() bool {
	return cv.user
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	mu.Lock()
	cv.callback = cb
	mu.Unlock()
}

func (cv *Cvar) SetByString(s string) {
	mu.Lock()
	if cv.rom {
		mu.Unlock()
		return
	}
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(s, 32)
	cv.value = float32(pf)
	cb := cv.callback
	mu.Unlock()
	if cb != nil {
		cb(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	mu.RLock()
	defer mu.RUnlock()
	return cv.stringValue
}

func (cv *Cvar) ID() int {
	return cv.id
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Default() string {
	return cv.defaultValue
}

func (cv *Cvar) Value() float32 {
	mu.RLock()
	defer mu.RUnlock()
	return cv.value
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		v := strconv.FormatInt(int64(value), 10)
		cv.SetByString(v)
	} else {
		v := strconv.FormatFloat(float64(value), 'f', -1, 32)
		cv.SetByString(v)
	}
}

func (cv *Cvar) Toggle() {
	if cv.String() == "1" {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.String() != "0"
}

func Get(name string) (*Cvar, bool) {
	mu.RLock()
	defer mu.RUnlock()
	cv, ok := cvarByName[name]
	return cv, ok
}

func GetByID(id int) (*Cvar, error) {
	mu.RLock()
	defer mu.RUnlock()
	if id < 0 || id >= len(cvarArray) {
		return nil, fmt.Errorf("id out of bounds")
	}
	return cvarArray[id], nil
}

// create expects mu to be held.
func create(name, value string) *Cvar {
	pf, _ := strconv.ParseFloat(value, 32)
	cv := &Cvar{
		name:         name,
		defaultValue: value,
		stringValue:  value,
		value:        float32(pf),
		id:           len(cvarArray),
	}
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := cvarByName[name]; ok {
		return nil, fmt.Errorf("Can't register variable %s, already defined", name)
	}

	cv := create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.rom = flags&ROM != 0
	cv.user = flags&USERDEFINED != 0
	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		panic(err)
	}
	return cv
}

// Set assigns a value by name. Unknown names are created as user cvars.
func Set(name, value string) *Cvar {
	mu.Lock()
	cv, ok := cvarByName[name]
	if !ok {
		cv = create(name, value)
		cv.user = true
		mu.Unlock()
		return cv
	}
	mu.Unlock()
	cv.SetByString(value)
	return cv
}

// ResetAll restores every cvar to its default value.
func ResetAll() {
	for _, cv := range All() {
		cv.Reset()
	}
}

// List writes all cvars sorted by name, archived ones marked with '*'.
func List(w io.Writer) error {
	cvars := All()
	sort.Slice(cvars, func(i, j int) bool { return cvars[i].Name() < cvars[j].Name() })
	for _, v := range cvars {
		mark := " "
		if v.Archive() {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s \"%s\"\n", mark, v.Name(), v.String()); err != nil {
			return errors.Wrap(err, "cvar list")
		}
	}
	_, err := fmt.Fprintf(w, "%v cvars\n", len(cvars))
	return err
}
