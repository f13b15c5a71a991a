package mesh

// unsafe shadows the standard package at package scope
var unsafe = "not the package"
