// Package io provides JSON import and export for tournaments.
//
// # JSON Format
//
// Two shapes are accepted on input. A bare array of rounds, as produced by
// quick mock generators and older front-ends:
//
//	[
//	  {"name": "Semifinals", "matches": [
//	    {"id": "m1", "team1": {"name": "A", "score": 2}, "team2": {"name": "B", "score": 1}, "winner": 1},
//	    {"id": "m2", "team1": {"name": "C", "score": 0}, "team2": {"name": "D", "score": 3}, "winner": 2}
//	  ]},
//	  {"name": "Final", "matches": [
//	    {"id": "m1|m2", "team1": {"name": "A", "score": 0}, "team2": {"name": "D", "score": 0}, "winner": 0}
//	  ]}
//	]
//
// Or a tournament object with "id", "name", "description", "rounds",
// "createdAt" and "updatedAt" fields. Output is always the object form.
//
// Import validates winner values only. Bracket structure (lineage, round
// sizes) is checked by the layout engine, which is the component that
// actually depends on it.
package io
