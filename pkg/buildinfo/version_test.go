package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "v1.2.3"

	if got := Get(); got.Version != "v1.2.3" || got.Commit != Commit || got.Built != Date {
		t.Errorf("Get() = %+v", got)
	}
	if tmpl := Template(); !strings.HasPrefix(tmpl, "{{.Name}} version v1.2.3\n") {
		t.Errorf("Template() = %q", tmpl)
	}
}
