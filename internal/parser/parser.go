// Package parser extracts structured job records from free-form,
// inconsistently formatted text messages: pasted chat history, labeled
// forms, or bare "address / price / name" blocks.
package parser

import (
	"strings"

	"github.com/avilevy18/techpay.git/internal/commission"
)

// MessageParser turns raw job-closure messages into ParsedJob records.
// It holds no state; one instance may serve any number of concurrent
// callers.
type MessageParser struct{}

func NewMessageParser() *MessageParser {
	return &MessageParser{}
}

// ParseSingleJob parses one job message. It returns nil when no usable
// address or no nonzero total can be located; it never panics on
// malformed input.
func (p *MessageParser) ParseSingleJob(text string) *ParsedJob {
	text = normalize(text)
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return nil
	}

	address := extractAddress(text, lines)
	if address == "" {
		return nil
	}

	job := &ParsedJob{Address: address}

	// Multiple distinct channel mentions make this a split payment;
	// otherwise the ordered total chain decides amount and method.
	if sp, ok := extractSplit(text); ok {
		job.PaymentMethod = commission.PaymentSplit
		job.Total = sp.Total
		job.CashAmount = sp.Cash
		job.CCAmount = sp.CC
		job.CheckAmount = sp.Check
	} else {
		total, method, ok := extractTotal(text)
		if !ok {
			return nil
		}
		job.Total = total
		job.PaymentMethod = method
	}
	if job.Total.IsZero() {
		return nil
	}

	job.Parts = extractParts(text)
	job.Phone = extractPhone(text)
	job.JobDate = extractDate(text)
	job.Description = extractDescription(text, address, lines)
	job.TechnicianName = extractTechnician(lines)
	job.TechAmount = extractTechAmount(text)

	return job
}

// ParseMultipleJobs splits a multi-job paste into blocks and parses
// each independently. Blocks that fail single-job parsing are dropped;
// the caller reports "N jobs found" and a human reviews the result.
func (p *MessageParser) ParseMultipleJobs(text string) []ParsedJob {
	var jobs []ParsedJob
	for _, block := range splitBlocks(normalize(text)) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if job := p.ParseSingleJob(block); job != nil {
			jobs = append(jobs, *job)
		}
	}
	return jobs
}

// splitBlocks finds job boundaries in pasted chat history. A block
// ends at a technician-name line, but only once a pricing signal has
// been seen inside the block and only when the name is followed by
// something that starts a new job (street-number address, phone, or
// chat timestamp). Delimiter-based splitting is not enough here:
// technician names and addresses are not otherwise marked.
func splitBlocks(text string) []string {
	lines := strings.Split(text, "\n")

	var blocks []string
	var current []string
	seenPricing := false

	for i, line := range lines {
		current = append(current, line)

		if isPricingLine(line) {
			seenPricing = true
		}
		if !seenPricing {
			continue
		}

		if !isNameToken(stripChatPrefix(line)) {
			continue
		}

		// The name only closes the block when fresh job content
		// follows it.
		if nextContentStartsJob(lines[i+1:]) {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
			seenPricing = false
		}
	}

	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return blocks
}

// nextContentStartsJob skips blank lines and reports whether the first
// content line looks like the start of a new job.
func nextContentStartsJob(rest []string) bool {
	for _, line := range rest {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return isNewJobStart(line)
	}
	return false
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}
