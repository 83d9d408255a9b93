// Package strutil provides string utilities.
package strutil
