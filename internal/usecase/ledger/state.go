package ledger

import (
	"sort"

	"github.com/simaogato/networth-backend/internal/domain"
)

// Phase is the lifecycle phase of the controller
type Phase string

const (
	PhaseLoading     Phase = "LOADING"
	PhaseReady       Phase = "READY"
	PhaseUnreachable Phase = "UNREACHABLE" // Terminal
)

// State is a consistent view of the ledger mirrors held by the controller.
// Assets and Liabilities are newest first, History is ordered by ascending date.
type State struct {
	Phase       Phase
	Degraded    bool  // Ready with only part of the collections loaded
	LoadErr     error // Failures of the initial load when Degraded
	Assets      []*domain.Asset
	Liabilities []*domain.Liability
	History     []*domain.NetWorthEntry
}

// Clone returns a deep copy of the state so callers cannot alter the controller's mirrors
func (s State) Clone() State {
	out := State{
		Phase:       s.Phase,
		Degraded:    s.Degraded,
		LoadErr:     s.LoadErr,
		Assets:      make([]*domain.Asset, 0, len(s.Assets)),
		Liabilities: make([]*domain.Liability, 0, len(s.Liabilities)),
		History:     make([]*domain.NetWorthEntry, 0, len(s.History)),
	}
	for _, a := range s.Assets {
		cp := *a
		out.Assets = append(out.Assets, &cp)
	}
	for _, l := range s.Liabilities {
		cp := *l
		out.Liabilities = append(out.Liabilities, &cp)
	}
	for _, e := range s.History {
		cp := *e
		out.History = append(out.History, &cp)
	}
	return out
}

// The reducers below never modify their input slices; each returns a new State.

func withAssetAdded(s State, asset *domain.Asset) State {
	assets := make([]*domain.Asset, 0, len(s.Assets)+1)
	assets = append(assets, asset)
	s.Assets = append(assets, s.Assets...)
	return s
}

func withAssetRemoved(s State, id string) State {
	assets := make([]*domain.Asset, 0, len(s.Assets))
	for _, a := range s.Assets {
		if a.ID != id {
			assets = append(assets, a)
		}
	}
	s.Assets = assets
	return s
}

func withLiabilityAdded(s State, liability *domain.Liability) State {
	liabilities := make([]*domain.Liability, 0, len(s.Liabilities)+1)
	liabilities = append(liabilities, liability)
	s.Liabilities = append(liabilities, s.Liabilities...)
	return s
}

func withLiabilityRemoved(s State, id string) State {
	liabilities := make([]*domain.Liability, 0, len(s.Liabilities))
	for _, l := range s.Liabilities {
		if l.ID != id {
			liabilities = append(liabilities, l)
		}
	}
	s.Liabilities = liabilities
	return s
}

// withEntryRecorded inserts the entry after every entry with the same or an earlier date.
// In the normal case that is the end of the slice.
func withEntryRecorded(s State, entry *domain.NetWorthEntry) State {
	i := sort.Search(len(s.History), func(i int) bool {
		return s.History[i].Date > entry.Date
	})
	history := make([]*domain.NetWorthEntry, 0, len(s.History)+1)
	history = append(history, s.History[:i]...)
	history = append(history, entry)
	s.History = append(history, s.History[i:]...)
	return s
}

// sortHistory orders entries by ascending date, keeping store order within a day
func sortHistory(entries []*domain.NetWorthEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}
