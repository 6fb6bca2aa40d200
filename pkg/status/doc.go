/*
Package status renders the results of a kachi run: the completion summary
line with singular/plural wording and the profile table shown by `kachi list`.
*/
package status
