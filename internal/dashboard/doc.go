// Package dashboard holds the view state shared by the terminal and web
// front ends: list search and statistics, the per-country detail state
// (focused city, date and month), the month grid, and the placeholder
// booking action.
package dashboard
