// Package boxscoretest provides flattened game pages shaped like esake.gr output
// for use in tests.
package boxscoretest

import "strings"

// Teams are the names GameText announces before its shots markers.
var Teams = [2]string{"ΑΕΚ", "ΠΑΟΚ"}

// Players are the roster names of GameText, home team first.
var Players = [2][]string{
	{"ΜΠΕΤΣ Άντριου", "ΠΑΠΑΣ ΓΙΩΡΓΟΣ", "ΛΑΓΙΟΣ ΝΙΚΟΣ"},
	{"ΚΩΣΤΑΣ ΔΗΜΟΥ", "ΣΛΟΥΚΑΣ ΘΑΝΟΣ", "ΜΑΥΡΟΣ ΠΕΤΡΟΣ"},
}

// GameText is a complete two-team game with three players per team. The last
// player of each team is preceded by a rank number instead of "#".
var GameText = strings.Join([]string{
	"ΑΕΚ SHOTS 45% ΠΑΟΚ SHOTS 41%",
	"RANK ΠΑΙΚΤΗΣ ΛΕΠΤΑ ΠΟΝΤΟΙ",
	"# ΜΠΕΤΣ Άντριου 00:23:13 12 3 - 5 60% 1 - 2 50% 3 - 4 75% 1 0 2 3 1 0 0 4",
	"# ΠΑΠΑΣ ΓΙΩΡΓΟΣ 00:30:05 9 2 - 6 33% 1 - 3 33% 2 - 2 100% 2 1 3 1 0 5 1 2",
	"5 ΛΑΓΙΟΣ ΝΙΚΟΣ 00:15:40 4 1 - 2 50% 0 - 1 0% 2 - 4 50% 0 2 1 1 0 1 2 3",
	"ΣΥΝΟΛΟ 200:00:00 80 30 - 50 60% 8 - 20 40% 12 - 16 75% 10 5 20 18 3 15 8 25",
	"ΠΑΟΚ RANK ΠΑΙΚΤΗΣ ΛΕΠΤΑ ΠΟΝΤΟΙ",
	"# ΚΩΣΤΑΣ ΔΗΜΟΥ 00:25:00 15 5 - 8 62% 1 - 2 50% 2 - 2 100% 1 1 2 2 0 3 0 6",
	"# ΣΛΟΥΚΑΣ ΘΑΝΟΣ 00:20:30 7 2 - 4 50% 1 - 1 100% 0 - 2 0% 3 0 1 2 1 2 0 4",
	"4 ΜΑΥΡΟΣ ΠΕΤΡΟΣ 00:10:10 2 1 - 1 100% 0 - 0 0% 0 - 0 0% 0 0 1 0 0 0 1 1",
	"ΣΥΝΟΛΟ 200:00:00 70 28 - 48 58% 7 - 19 37% 10 - 15 66% 9 4 19 17 2 14 7 24",
}, " ")

// SingleTotalsText is GameText cut off after the home team's totals row.
var SingleTotalsText = strings.Join([]string{
	"ΑΕΚ SHOTS 45% ΠΑΟΚ SHOTS 41%",
	"RANK ΠΑΙΚΤΗΣ ΛΕΠΤΑ ΠΟΝΤΟΙ",
	"# ΜΠΕΤΣ Άντριου 00:23:13 12 3 - 5 60% 1 - 2 50% 3 - 4 75% 1 0 2 3 1 0 0 4",
	"5 ΛΑΓΙΟΣ ΝΙΚΟΣ 00:15:40 4 1 - 2 50% 0 - 1 0% 2 - 4 50% 0 2 1 1 0 1 2 3",
	"ΣΥΝΟΛΟ 200:00:00 80 30 - 50 60% 8 - 20 40% 12 - 16 75% 10 5 20 18 3 15 8 25",
}, " ")
