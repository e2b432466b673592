package uri

import (
	"strings"
	"testing"
)

const testCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func TestExtractContentID_AllForms(t *testing.T) {
	uris := []string{
		"ipfs://" + testCID,
		"https://gateway.pinata.cloud/ipfs/" + testCID + "?x=1",
		"https://" + testCID + ".ipfs.foo.link/",
	}

	for _, uri := range uris {
		cid, ok := ExtractContentID(uri)
		if !ok {
			t.Errorf("%s: expected content id", uri)
			continue
		}
		if cid != testCID {
			t.Errorf("%s: expected %s, got %s", uri, testCID, cid)
		}
	}
}

func TestExtractContentID_TrailingSegments(t *testing.T) {
	cid, ok := ExtractContentID("ipfs://" + testCID + "/images/logo.png")
	if !ok || cid != testCID {
		t.Errorf("expected %s, got %q (ok=%v)", testCID, cid, ok)
	}
}

func TestExtractContentID_NoMatch(t *testing.T) {
	uris := []string{
		"",
		"https://example.com/logo.png",
		"ipfs://tooshort",
		"/relative/path.png",
	}

	for _, uri := range uris {
		if cid, ok := ExtractContentID(uri); ok {
			t.Errorf("%s: expected no match, got %s", uri, cid)
		}
	}
}

func TestResolve_ContentID(t *testing.T) {
	r := NewResolver(DefaultConfig())

	resolved := r.Resolve("ipfs://" + testCID)
	want := "https://ipfs.io/ipfs/" + testCID
	if resolved != want {
		t.Errorf("expected %s, got %s", want, resolved)
	}
}

func TestResolve_Archival(t *testing.T) {
	r := NewResolver(DefaultConfig())

	resolved := r.Resolve("ar://abc123")
	if resolved != "https://arweave.net/abc123" {
		t.Errorf("unexpected archival resolution: %s", resolved)
	}
}

func TestResolve_RootRelative(t *testing.T) {
	r := NewResolver(DefaultConfig())

	resolved := r.Resolve("/logos/token.png")
	if resolved != "https://tokens.jup.ag/logos/token.png" {
		t.Errorf("unexpected relative resolution: %s", resolved)
	}
}

func TestResolve_Passthrough(t *testing.T) {
	r := NewResolver(DefaultConfig())

	direct := "https://example.com/logo.png"
	if resolved := r.Resolve(direct); resolved != direct {
		t.Errorf("expected passthrough, got %s", resolved)
	}
}

func TestResolve_Empty(t *testing.T) {
	r := NewResolver(DefaultConfig())

	for _, raw := range []string{"", "   ", "\t"} {
		if resolved := r.Resolve(raw); resolved != "" {
			t.Errorf("expected empty for %q, got %s", raw, resolved)
		}
	}
}

func TestCandidates_ContentIDFanout(t *testing.T) {
	config := DefaultConfig()
	r := NewResolver(config)

	candidates := r.Candidates("ipfs://" + testCID)
	if len(candidates) != len(config.IPFSGateways) {
		t.Fatalf("expected %d candidates, got %d", len(config.IPFSGateways), len(candidates))
	}

	for i, c := range candidates {
		if !strings.HasSuffix(c, testCID) {
			t.Errorf("candidate %d does not end with cid: %s", i, c)
		}
		if !strings.HasPrefix(c, config.IPFSGateways[i]) {
			t.Errorf("candidate %d not on gateway %s: %s", i, config.IPFSGateways[i], c)
		}
	}
}

func TestCandidates_DirectURL(t *testing.T) {
	r := NewResolver(DefaultConfig())

	candidates := r.Candidates("https://example.com/meta.json")
	if len(candidates) != 1 || candidates[0] != "https://example.com/meta.json" {
		t.Errorf("expected single direct candidate, got %v", candidates)
	}
}

func TestCandidates_Empty(t *testing.T) {
	r := NewResolver(DefaultConfig())

	if candidates := r.Candidates(""); candidates != nil {
		t.Errorf("expected nil candidates, got %v", candidates)
	}
}
