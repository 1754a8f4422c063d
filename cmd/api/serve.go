package main

import "os"

// listener es lo que serve necesita de *fiber.App.
type listener interface {
	Listen(addr string) error
}

// serve arranca app en addr y espera a que Listen falle o llegue una señal por quit.
// Devuelve el error de Listen, o nil si terminó por señal.
func serve(app listener, addr string, quit <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-quit:
		return nil
	}
}
