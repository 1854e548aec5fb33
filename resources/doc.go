// Package resources contains functions to prepare paths for test86
// resources.
//
// The JoinPath() function returns the correct path to the resource
// directory/file specified in the arguments. It handles the creation of
// directories as required but does not otherwise touch or create files.
//
// The base path depends on how the binary was built. For builds with the
// "release" build tag the path is rooted in the user's configuration
// directory. On modern Linux systems the full path would be something like:
//
//	/home/user/.config/test86/
//
// For non-"release" builds, the path is rooted in the current working
// directory:
//
//	.test86
//
// During development it is more convenient to have the config directory close
// to hand. For release binaries the config directory should be somewhere the
// end-user expects.
//
// # portable.txt
//
// An exception to the above rules is when an empty file named 'portable.txt'
// is in the same directory as the program binary. When the file exists the
// resources are saved in a directory named 'Test86_UserData' in the same
// directory as the program binary.
package resources
