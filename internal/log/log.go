// Package log provides the module-scoped structured logger used across
// nesvm. It wraps logrus with a small chainable builder so hot paths (the
// CPU/PPU tick loops) can build a log line without paying for it unless the
// module's level is enabled.
package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

// Module identifies the subsystem a log line originates from.
type Module int

const (
	ModEmu Module = iota
	ModCPU
	ModPPU
	ModBus
	ModClock
	ModCart
	ModAPU
	ModInput
)

var modNames = [...]string{"emu", "cpu", "ppu", "bus", "clock", "cart", "apu", "input"}

func (m Module) String() string {
	if int(m) < len(modNames) {
		return modNames[m]
	}
	return "?"
}

// ModuleMask is a bitset of Modules, one bit per Module value.
type ModuleMask uint32

// ModuleMaskAll enables Debug logging for every known module.
const ModuleMaskAll ModuleMask = 1<<len(modNames) - 1

// Mask returns m's bit within a ModuleMask.
func (m Module) Mask() ModuleMask { return 1 << uint(m) }

// ModuleNames lists every module name recognized by ModuleByName, in
// declaration order.
func ModuleNames() []string {
	names := make([]string, len(modNames))
	copy(names, modNames[:])
	return names
}

// ModuleByName resolves a module by its lowercase name, as printed by
// ModuleNames.
func ModuleByName(name string) (Module, bool) {
	for i, n := range modNames {
		if n == name {
			return Module(i), true
		}
	}
	return 0, false
}

// debugMask selects which modules emit Debug-level lines. Info and above
// are emitted for every module unless Disable has been called.
var debugMask uint32
var disabled bool

// EnableDebug turns on Debug-level logging for the given modules.
func EnableDebug(mods ...Module) {
	for _, m := range mods {
		debugMask |= 1 << uint(m)
	}
	logrus.SetLevel(logrus.DebugLevel)
}

// EnableDebugModules turns on Debug-level logging for every module set in
// mask.
func EnableDebugModules(mask ModuleMask) {
	debugMask |= uint32(mask)
	logrus.SetLevel(logrus.DebugLevel)
}

// Disable silences every log line at every level, regardless of debugMask.
func Disable() {
	disabled = true
}

func (m Module) debugEnabled() bool {
	return !disabled && debugMask&(1<<uint(m)) != 0
}

// Entry is a nullable log line builder: when its level is disabled, every
// chained call is a no-op, so the caller incurs no formatting cost.
type Entry struct {
	entry *logrus.Entry
}

func (m Module) newEntry(lvl logrus.Level, msg string) *Entry {
	if disabled {
		return &Entry{}
	}
	if lvl == logrus.DebugLevel && !m.debugEnabled() {
		return &Entry{}
	}
	return &Entry{entry: logrus.WithField("mod", m.String()).WithField("lvl", lvl).WithField("msg", msg)}
}

func (m Module) DebugZ(msg string) *Entry { return m.newEntry(logrus.DebugLevel, msg) }
func (m Module) InfoZ(msg string) *Entry  { return m.newEntry(logrus.InfoLevel, msg) }
func (m Module) WarnZ(msg string) *Entry  { return m.newEntry(logrus.WarnLevel, msg) }
func (m Module) ErrorZ(msg string) *Entry { return m.newEntry(logrus.ErrorLevel, msg) }

func (e *Entry) Hex8(key string, v uint8) *Entry {
	if e.entry == nil {
		return e
	}
	e.entry = e.entry.WithField(key, fmt.Sprintf("%02x", v))
	return e
}

func (e *Entry) Hex16(key string, v uint16) *Entry {
	if e.entry == nil {
		return e
	}
	e.entry = e.entry.WithField(key, fmt.Sprintf("%04x", v))
	return e
}

func (e *Entry) Uint16(key string, v uint16) *Entry {
	if e.entry == nil {
		return e
	}
	e.entry = e.entry.WithField(key, v)
	return e
}

func (e *Entry) Int(key string, v int) *Entry {
	if e.entry == nil {
		return e
	}
	e.entry = e.entry.WithField(key, v)
	return e
}

func (e *Entry) Str(key, v string) *Entry {
	if e.entry == nil {
		return e
	}
	e.entry = e.entry.WithField(key, v)
	return e
}

func (e *Entry) Err(err error) *Entry {
	if e.entry == nil {
		return e
	}
	e.entry = e.entry.WithField("err", err)
	return e
}

// End flushes the entry to logrus at the level it was created with.
func (e *Entry) End() {
	if e.entry == nil {
		return
	}
	lvl, _ := e.entry.Data["lvl"].(logrus.Level)
	msg, _ := e.entry.Data["msg"].(string)
	entry := e.entry
	delete(entry.Data, "lvl")
	delete(entry.Data, "msg")
	switch lvl {
	case logrus.DebugLevel:
		entry.Debug(msg)
	case logrus.InfoLevel:
		entry.Info(msg)
	case logrus.WarnLevel:
		entry.Warn(msg)
	case logrus.ErrorLevel:
		entry.Error(msg)
	default:
		entry.Print(msg)
	}
}
