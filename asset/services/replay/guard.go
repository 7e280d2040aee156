/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package replay

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/nftmint-labs/asset-sdk/asset"
	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/pkg/errors"
)

var logger = logging.MustGetLogger("replay")

const (
	DefaultTTL      = 10 * time.Minute
	DefaultMaxItems = 100_000
)

// ErrFull is returned when the guard cannot record a new assertion before older ones expire
var ErrFull = errors.Wrap(asset.ErrUnauthorized, "replay guard full")

type entry struct {
	key     string
	expires time.Time
}

// Guard remembers the signed assertions it has accepted for a limited time.
// An assertion presented twice within that window is refused.
// When maxItems assertions are live, new ones are refused until the oldest expire.
type Guard struct {
	ttl      time.Duration
	maxItems int

	mu sync.Mutex
	// order holds entries by expiry, oldest first
	order *list.List
	seen  map[string]*list.Element
}

// NewGuard returns a guard remembering up to maxItems assertions for ttl.
// Non-positive values select DefaultTTL and DefaultMaxItems.
func NewGuard(ttl time.Duration, maxItems int) *Guard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Guard{
		ttl:      ttl,
		maxItems: maxItems,
		order:    list.New(),
		seen:     map[string]*list.Element{},
	}
}

// Check records the assertion and fails with asset.ErrReplayed if it was already recorded.
// It fails with ErrFull if the guard has no room left.
func (g *Guard) Check(a *asset.SignedAssertion) error {
	key := fingerprint(a)
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	g.prune(now)
	if _, found := g.seen[key]; found {
		logger.Warnf("replayed assertion from [%s]", a.Identity)
		return errors.Wrapf(asset.ErrReplayed, "assertion from [%s]", a.Identity)
	}
	if len(g.seen) >= g.maxItems {
		logger.Warnf("refusing assertion from [%s]: [%d] assertions pending expiry", a.Identity, len(g.seen))
		return errors.Wrapf(ErrFull, "assertion from [%s]", a.Identity)
	}
	g.seen[key] = g.order.PushBack(&entry{key: key, expires: now.Add(g.ttl)})
	return nil
}

// Forget drops an assertion, so that it can be presented again
func (g *Guard) Forget(a *asset.SignedAssertion) {
	key := fingerprint(a)
	g.mu.Lock()
	defer g.mu.Unlock()
	if e, ok := g.seen[key]; ok {
		g.order.Remove(e)
		delete(g.seen, key)
	}
}

// Len returns the number of assertions currently remembered
func (g *Guard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prune(time.Now())
	return len(g.seen)
}

func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.order.Init()
	g.seen = map[string]*list.Element{}
}

// prune drops expired entries. Entries share one ttl, so expiry follows insertion order.
func (g *Guard) prune(now time.Time) {
	for front := g.order.Front(); front != nil; front = g.order.Front() {
		e := front.Value.(*entry)
		if now.Before(e.expires) {
			return
		}
		g.order.Remove(front)
		delete(g.seen, e.key)
	}
}

func fingerprint(a *asset.SignedAssertion) string {
	h := sha256.New()
	h.Write(a.Identity[:])
	h.Write(a.Message)
	h.Write(a.Signature)
	return hex.EncodeToString(h.Sum(nil))
}
