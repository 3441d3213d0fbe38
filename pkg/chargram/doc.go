/*
Package chargram turns word lists into character-bigram frequency
statistics.

It builds a dense vocabulary over a caller-supplied alphabet plus two
sentinel tokens, streams bigrams out of padded lowercase words, and tallies
them into a square frequency table addressed by vocabulary indices. Word
lists can come from a plain-text file or from a SQLite corpus store; both
feed the same Source interface.

For a complete usage example, see the README.md file.
*/
package chargram
