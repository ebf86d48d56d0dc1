// Package network implements a two-layer logistic feed-forward network:
// weight storage and its text file format, the forward pass, and the online
// backpropagation update.
package network
