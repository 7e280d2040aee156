/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging_test

import (
	"fmt"
	"testing"

	"github.com/nftmint-labs/asset-sdk/asset/services/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNamedLoggerAndLevel(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.Replace(zap.New(core))

	logger := logging.MustGetLogger("issuance", "", "orchestrator")
	logger.Infof("issued [%s]", "A")
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "asset-sdk.issuance.orchestrator", entry.LoggerName)
	assert.Equal(t, "issued [A]", entry.Message)
	assert.True(t, logger.IsEnabledFor(zapcore.DebugLevel))

	require.Error(t, logging.SetLevel("loud"))
	require.NoError(t, logging.SetLevel("WARN"))
	require.NoError(t, logging.SetLevel(""))
}

func TestPrintableHelpers(t *testing.T) {
	assert.Equal(t, "short", logging.Prefix("short").String())
	long := logging.Prefix("0123456789012345678901234567890").String()
	assert.Contains(t, long, "01234567890123456789~")
	assert.Equal(t, "aXb", logging.Printable("a\xffb").String())

	secret := logging.Redacted("do-not-print")
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", secret))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", secret))
}
