// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package relay

import (
	"io"
	"log"
	"net"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/stretchr/testify/require"
)

func testLogger(t *testing.T) logr.Logger {
	t.Helper()
	return stdr.New(log.New(io.Discard, "", 0))
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}
