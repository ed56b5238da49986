package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/purifier-protocol/purifier-go/pkg/discovery"
)

// RunDiscover browses until ctx is done and prints each service as it
// appears. It returns the number of services seen.
func RunDiscover(ctx context.Context, b *discovery.MDNSBrowser, w io.Writer) (int, error) {
	results, err := b.Browse(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool)
	for svc := range results {
		seen[svc.Instance] = true
		fmt.Fprintln(w, formatService(svc))
	}
	return len(seen), nil
}

func formatService(svc *discovery.Service) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  host=%s port=%d addrs=%s", svc.Instance, svc.Host, svc.Port, strings.Join(svc.Addresses, ","))

	keys := make([]string, 0, len(svc.Text))
	for k := range svc.Text {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, svc.Text[k])
	}
	return b.String()
}
