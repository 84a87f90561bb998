// Package project manages the project file that sits next to the device
// descriptions of a network.
//
// The project file records user overrides that must not be written into the
// device description itself. Today that is the set of forced objects per
// node:
//
//	<Node nodeID="1" name="CN_1" pathToXDC="deviceConfiguration/1.xdc">
//	  <ForcedObjects>
//	    <Object index="1006"/>
//	    <Object index="1F81" subindex="01"/>
//	  </ForcedObjects>
//	</Node>
//
// All reads and writes go through an xdd.Document, so forcing one object
// leaves the rest of the file untouched.
package project
