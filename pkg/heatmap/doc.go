/*
Package heatmap renders chargram frequency tables as annotated heatmap
images.

Rows and columns follow the vocabulary order, with row 0 at the top so the
image reads like the matrix. Each cell can carry its two-rune bigram label
and its count.
*/
package heatmap
