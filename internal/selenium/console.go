// Package selenium queries a Selenium Grid hub for its registered nodes.
//
// The hub console page lists one proxy block per node, and each browser slot
// carries its capabilities in a title attribute of the form
// {seleniumProtocol=WebDriver, browserName=chrome, maxInstances=1, platform=LINUX}.
package selenium

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ProtocolWebDriver is the protocol value counted as an available browser
const ProtocolWebDriver = "WebDriver"

// Node is one machine or container registered with the hub
type Node struct {
	ID       string
	Browsers []Browser
}

// Browser describes one browser slot on a node
type Browser struct {
	Protocol     string
	Name         string
	MaxInstances int
	Platform     string
}

// ParseConsole decodes the hub console page into nodes
func ParseConsole(r io.Reader) ([]Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse grid console: %w", err)
	}

	nodes := []Node{}
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || !hasClass(n, "proxy") {
			return true
		}

		node := Node{}
		walk(n, func(c *html.Node) bool {
			if c.Type != html.ElementNode {
				return true
			}
			if hasClass(c, "proxyid") {
				node.ID = strings.TrimSpace(textContent(c))
			}
			if title, ok := attr(c, "title"); ok {
				if browser, ok := parseBrowser(title); ok {
					node.Browsers = append(node.Browsers, browser)
				}
			}
			return true
		})
		nodes = append(nodes, node)

		// Proxies do not nest.
		return false
	})

	return nodes, nil
}

// parseBrowser reads a capability title such as
// {seleniumProtocol=WebDriver, browserName=chrome, maxInstances=1, platform=LINUX}
func parseBrowser(title string) (Browser, bool) {
	title = strings.TrimSpace(title)
	if !strings.HasPrefix(title, "{") || !strings.HasSuffix(title, "}") {
		return Browser{}, false
	}

	caps := map[string]string{}
	for _, pair := range strings.Split(title[1:len(title)-1], ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		caps[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	protocol, ok := caps["seleniumProtocol"]
	if !ok {
		return Browser{}, false
	}

	browser := Browser{
		Protocol: protocol,
		Name:     caps["browserName"],
		Platform: caps["platform"],
	}
	if browser.Platform == "" {
		browser.Platform = caps["platformName"]
	}
	if n, err := strconv.Atoi(caps["maxInstances"]); err == nil {
		browser.MaxInstances = n
	}

	return browser, true
}

// walk visits n and its descendants depth first. visit returning false
// skips the children of that node.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	value, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(value) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}
