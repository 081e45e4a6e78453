// Command posctl tareas administrativas del punto de venta: migraciones, arranque del
// administrador y alta de personal desde la terminal.
package main

import "github.com/jhoicas/pos-core/cmd/posctl/commands"

func main() {
	commands.Execute()
}
