package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/haldis/devcard/internal/device"
)

// Section titles for the card
const (
	SectionDevice  = "Device Specifications"
	SectionNetwork = "Network Information"
)

// Row is a single labeled value on the card
type Row struct {
	Label string
	Value string
}

// Section groups rows under a title
type Section struct {
	Title string
	Rows  []Row
}

// BuildSections assembles the card rows from a snapshot and a public IP.
// Rows backed by absent optional fields are omitted entirely rather than
// rendered with placeholder text. A nil snapshot yields a device section
// with zero rows; the network section carries the public IP row whenever
// publicIP is non-empty (a failed lookup still yields the sentinel, so
// empty means the lookup was skipped on purpose).
func BuildSections(snap *device.Snapshot, publicIP string) []Section {
	deviceSection := Section{Title: SectionDevice}
	networkSection := Section{Title: SectionNetwork}

	if snap != nil {
		rows := make([]Row, 0, 16)
		if model, ok := snap.Model.Get(); ok {
			rows = append(rows, Row{"Model", model})
		}
		if id, ok := snap.ModelID.Get(); ok {
			rows = append(rows, Row{"Model ID", id})
		}
		if brand, ok := snap.Brand.Get(); ok {
			rows = append(rows, Row{"Brand", brand})
		}
		if manufacturer, ok := snap.Manufacturer.Get(); ok {
			rows = append(rows, Row{"Manufacturer", manufacturer})
		}
		if name, ok := snap.DeviceName.Get(); ok {
			rows = append(rows, Row{"Device Name", name})
		}
		rows = append(rows,
			Row{"OS", snap.OSName},
			Row{"OS Version", snap.OSVersion},
			Row{"Device Type", snap.DeviceType.String()},
			Row{"Tablet", formatYesNo(snap.IsTablet)},
			Row{"Resolution", snap.Resolution},
			Row{"Font Scale", fmt.Sprintf("%.2f", snap.FontScale)},
			Row{"Battery", snap.BatteryLevel},
		)
		if year, ok := snap.YearClass.Get(); ok {
			rows = append(rows, Row{"Year Class", strconv.Itoa(year)})
		}
		if total, ok := snap.TotalMemoryGB().Get(); ok {
			rows = append(rows, Row{"Total Memory", total})
		}
		deviceSection.Rows = rows
	}

	netRows := make([]Row, 0, 4)
	if publicIP != "" {
		netRows = append(netRows, Row{"Public IP", publicIP})
	}
	if snap != nil {
		if ip, ok := snap.LocalIP.Get(); ok {
			netRows = append(netRows, Row{"Local IP", ip})
		}
		netRows = append(netRows,
			Row{"Network Type", snap.NetworkType},
			Row{"Connected", formatYesNo(snap.Connected)},
		)
	}
	networkSection.Rows = netRows

	return []Section{deviceSection, networkSection}
}

// FilterSections returns a copy of sections keeping only rows whose label
// or value contains the query, case-insensitively. An empty query keeps
// everything. Section titles always survive so the card keeps its shape.
func FilterSections(sections []Section, query string) []Section {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return sections
	}

	filtered := make([]Section, 0, len(sections))
	for _, section := range sections {
		out := Section{Title: section.Title}
		for _, row := range section.Rows {
			if strings.Contains(strings.ToLower(row.Label), query) ||
				strings.Contains(strings.ToLower(row.Value), query) {
				out.Rows = append(out.Rows, row)
			}
		}
		filtered = append(filtered, out)
	}
	return filtered
}

// PlainText renders sections as unstyled text, one "Label: Value" line
// per row. It is shared by the text command, the non-TTY fallback, and
// the clipboard copy action.
func PlainText(sections []Section) string {
	var b strings.Builder

	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(section.Title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", len(section.Title)))
		b.WriteString("\n")

		width := maxLabelWidth(section.Rows)
		for _, row := range section.Rows {
			b.WriteString(fmt.Sprintf("%-*s %s\n", width+1, row.Label+":", row.Value))
		}
	}

	return b.String()
}

// maxLabelWidth returns the length of the longest label in rows
func maxLabelWidth(rows []Row) int {
	width := 0
	for _, row := range rows {
		if len(row.Label) > width {
			width = len(row.Label)
		}
	}
	return width
}

// formatYesNo formats a boolean for card display
func formatYesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
