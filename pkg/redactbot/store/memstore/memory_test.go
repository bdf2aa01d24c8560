package memstore

import (
	"testing"

	"github.com/cognicore/redactbot/pkg/redactbot/store"
	"github.com/cognicore/redactbot/pkg/redactbot/store/storetest"
)

func TestMemstore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}
