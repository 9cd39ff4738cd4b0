// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	var b bytes.Buffer
	SetOutput(&b)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetDeveloper(false)
		SetPrintf(nil)
	})
	return &b
}

func TestPrintfRedirect(t *testing.T) {
	log := capture(t)
	var out bytes.Buffer
	SetPrintf(func(format string, v ...any) { fmt.Fprintf(&out, format, v...) })
	Printf("%d lightmaps written\n", 3)
	assert.Equal(t, "3 lightmaps written\n", out.String())
	assert.Empty(t, log.String())

	SetPrintf(nil)
	Printf("back to the log\n")
	assert.Contains(t, log.String(), `msg="back to the log"`)
}

func TestDeveloper(t *testing.T) {
	log := capture(t)
	DPrintf("hidden")
	Logger().Debug("hidden too")
	assert.Empty(t, log.String())

	SetDeveloper(true)
	DPrintf("shown %d", 1)
	Debug("pair", "k", 2)
	Warnf("careful\n")
	assert.Contains(t, log.String(), `msg="shown 1"`)
	assert.Contains(t, log.String(), "k=2")
	assert.Contains(t, log.String(), "level=WARN msg=careful")
}
