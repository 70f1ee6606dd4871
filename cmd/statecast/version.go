package main

const Version = "v0.3.1"
