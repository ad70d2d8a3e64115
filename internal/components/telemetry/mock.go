package telemetry

import (
	"strings"
	"sync"
)

// Report is a single call recorded by Mock.
type Report struct {
	Kind   string
	ID     string
	Params []any
}

// Mock records every report it receives so tests can assert on them.
type Mock struct {
	mutex   sync.Mutex
	Reports []Report
}

func (m *Mock) record(kind, id string, params []any) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Reports = append(m.Reports, Report{Kind: kind, ID: id, Params: params})
}

func (m *Mock) ReportBroken(id string, params ...any) {
	m.record("broken", id, params)
}

func (m *Mock) ReportWarning(id string, params ...any) {
	m.record("warning", id, params)
}

func (m *Mock) ReportDebug(msg string, params ...any) {
	m.record("debug", msg, params)
}

func (m *Mock) ReportCount(id string, count int64) {
	m.record("count", id, []any{count})
}

// Has returns true if a report of the given kind with an id ending in `idSuffix`
// was recorded, scoped ids are matched by their suffix.
func (m *Mock) Has(kind, idSuffix string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, r := range m.Reports {
		if r.Kind == kind && strings.HasSuffix(r.ID, idSuffix) {
			return true
		}
	}
	return false
}
