// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures into troubleshooting hints.
// Failures the server answered (any HTTP status) are not handled here; they
// carry the server's own message and are shown by logging.FormatFailure.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperr "helpdesk/cli/internal/errors"
)

// Category is the detected cause of a network failure.
type Category int

const (
	Generic Category = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
)

func (c Category) String() string {
	switch c {
	case Timeout:
		return "timeout"
	case DNS:
		return "dns"
	case ConnectionRefused:
		return "connection_refused"
	case TLS:
		return "tls"
	default:
		return "generic"
	}
}

// IsNetworkError reports whether err is a request that never got an HTTP
// response: a RequestFailed error with no status and a wrapped cause.
func IsNetworkError(err error) bool {
	var e *apperr.E
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == apperr.RequestFailed && e.Status == 0 && e.Err != nil
}

// Classify detects the cause of a network failure.
func Classify(err error) Category {
	switch {
	case err == nil:
		return Generic
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isSSLError(err):
		return TLS
	default:
		return Generic
	}
}

// FormatNetworkError displays troubleshooting hints for err and returns it
// wrapped for logging. action names what the user was doing; baseURL is the
// configured service address.
func FormatNetworkError(err error, action, baseURL string) error {
	if err == nil {
		return nil
	}
	pterm.Println(Render(err, action, baseURL))
	return fmt.Errorf("network error: %w", err)
}

// Render builds the message shown for a network failure.
func Render(err error, action, baseURL string) string {
	host := ExtractHostFromURL(baseURL)
	var b strings.Builder
	line := func(s string) { b.WriteString(s + "\n") }

	switch Classify(err) {
	case Timeout:
		line(fmt.Sprintf("⏱️  Connection timeout while %s", action))
		line("")
		line(fmt.Sprintf("%s took too long to respond. This could mean:", host))
		line("  • Slow network connection")
		line("  • Server is under heavy load")
		line("  • The timeout setting is too low (helpdesk config set timeout 30s)")
	case DNS:
		line(fmt.Sprintf("🌐 Cannot resolve server address while %s", action))
		line("")
		line(fmt.Sprintf("Unable to look up %s. Please check:", host))
		line("  • base_url is spelled correctly (helpdesk config show)")
		line("  • Your network and DNS settings")
	case ConnectionRefused:
		line(fmt.Sprintf("🚫 Connection refused while %s", action))
		line("")
		line(fmt.Sprintf("Nothing is accepting connections at %s. This could mean:", host))
		line("  • The helpdesk backend is not running")
		line("  • Wrong server address or port in base_url")
	case TLS:
		line(fmt.Sprintf("🔒 Secure connection failed while %s", action))
		line("")
		line(fmt.Sprintf("Cannot establish a secure HTTPS connection to %s. Try:", host))
		line("  • Check your system date and time")
		line("  • Verify network proxy settings")
	default:
		line(fmt.Sprintf("❌ Cannot connect to the helpdesk service while %s", action))
		line("")
		line("Please check:")
		line(fmt.Sprintf("  • Whether %s is reachable from your network", host))
		line("  • Firewall settings that might block the request")
		if details := err.Error(); details != "" {
			if len(details) > 100 {
				details = details[:100] + "..."
			}
			line("")
			line(pterm.Gray("Technical details: " + details))
		}
	}
	return b.String()
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "the server"
	}
	return u.Host
}
